package calculator

import (
	"errors"
	"fmt"

	"hydro/catalog"
	"hydro/model"
)

var ErrNotSupplied = errors.New("fertilizer does not supply element")

// 为使某元素达到 amount (mg/L) 所需的肥料浓度 (mg/L)
// salt = amount * M * 100 / (m * purity%)
func SaltForElement(f *model.Fertilizer, element string, amount float64) (float64, error) {
	w, ok := f.Elements[element]
	if !ok || w <= 0 {
		return 0, fmt.Errorf("%w: %s, %s", ErrNotSupplied, f.Name, element)
	}
	if amount <= 0 {
		return 0, nil
	}
	return amount * f.MolarMass * 100 / (w * f.PurityPercent()), nil
}

// 肥料浓度 salt (mg/L) 带入的某元素浓度 (mg/L)，是 SaltForElement 的逆运算
// 肥料不含该元素时为 0
func ElementFromSalt(f *model.Fertilizer, element string, salt float64) float64 {
	w := model.Get(f.Elements, element)
	return salt * w * (f.PurityPercent() / 100) / f.MolarMass
}

// 按肥料浓度构建投加结果，计算所有元素贡献以及对应的离子形态浓度
func NewDose(f *model.Fertilizer, salt float64) model.FertilizerDose {
	d := model.FertilizerDose{
		Fertilizer:         f,
		Name:               f.Name,
		ConcentrationMgL:   salt,
		ConcentrationMmolL: salt / f.MolarMass,
		Contributions:      make(map[string]float64, len(f.Elements)),
		Ions:               make(map[string]float64),
	}
	for el := range f.Elements {
		v := ElementFromSalt(f, el, salt)
		d.Contributions[el] = v
		if ion, factor := catalog.SpeciesFactor(el); factor > 0 {
			d.Ions[ion] = v * factor
		}
	}
	return d
}
