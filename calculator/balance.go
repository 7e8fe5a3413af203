package calculator

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"hydro/catalog"
	"hydro/model"
)

func (e *Engine) Balance(doses []model.FertilizerDose, water model.WaterBaseline) (model.IonBalance, error) {
	return Balance(e.cat, doses, water, e.cfg.ImbalanceTolerance)
}

// 离子平衡
// 1. 汇总各肥料的元素贡献，mg/L
// 2. mg/L -> mmol/L 除以原子量，mmol/L -> meq/L 乘以价态
// 3. Final 按单位逐项相加 Contributed 和 Water
// 4. 偏差 = |阳离子 - 阴离子| / 阳离子 * 100
func Balance(cat *catalog.Catalog, doses []model.FertilizerDose, water model.WaterBaseline, tolerance float64) (model.IonBalance, error) {
	b := model.IonBalance{
		Contributed: model.NewIonView(),
		Water:       model.NewIonView(),
		Final:       model.NewIonView(),
	}

	for el := range water {
		if _, err := cat.Element(el); err != nil {
			return b, fmt.Errorf("water: %w", err)
		}
	}
	contributed := make(map[string]float64)
	for _, d := range doses {
		for el, v := range d.Contributions {
			if _, err := cat.Element(el); err != nil {
				return b, fmt.Errorf("dose %s: %w", d.Name, err)
			}
			contributed[el] += v
		}
	}

	for _, e := range cat.Elements() {
		fill(b.Contributed, e, model.Get(contributed, e.Symbol))
		fill(b.Water, e, model.Get(water, e.Symbol))

		sym := e.Symbol
		b.Final.MgL[sym] = b.Contributed.MgL[sym] + b.Water.MgL[sym]
		b.Final.MmolL[sym] = b.Contributed.MmolL[sym] + b.Water.MmolL[sym]
		b.Final.MeqL[sym] = b.Contributed.MeqL[sym] + b.Water.MeqL[sym]

		if e.Cation {
			b.CationSum += b.Final.MeqL[sym]
		} else {
			b.AnionSum += b.Final.MeqL[sym]
		}
	}

	if b.CationSum > 0 {
		b.Imbalance = math.Abs(b.CationSum-b.AnionSum) / b.CationSum * 100
	}
	b.Balanced = b.Imbalance <= tolerance

	log.WithFields(log.Fields{
		"cation":    b.CationSum,
		"anion":     b.AnionSum,
		"imbalance": b.Imbalance,
	}).Debug("离子平衡")
	return b, nil
}

func fill(v model.IonView, e *model.Element, mgL float64) {
	mmol := mgL / e.AtomicWeight
	v.MgL[e.Symbol] = mgL
	v.MmolL[e.Symbol] = mmol
	v.MeqL[e.Symbol] = mmol * float64(e.Valence)
}
