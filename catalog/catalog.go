package catalog

import (
	"errors"
	"fmt"
	"sort"

	"hydro/model"
)

// 元素和肥料的参考数据，初始化后只读

var (
	ErrUnknownElement    = errors.New("unknown element")
	ErrUnknownFertilizer = errors.New("unknown fertilizer")
	ErrUnknownAcid       = errors.New("unknown acid")
)

// 元素
const (
	N    = "N"
	P    = "P"
	K    = "K"
	Ca   = "Ca"
	Mg   = "Mg"
	S    = "S"
	Fe   = "Fe"
	Mn   = "Mn"
	Zn   = "Zn"
	Cu   = "Cu"
	B    = "B"
	Mo   = "Mo"
	Na   = "Na"
	Cl   = "Cl"
	HCO3 = "HCO3"
)

// 肥料
const (
	PotassiumPhosphate = "Potassium phosphate monobasic"
	CalciumNitrate     = "Calcium nitrate"
	MagnesiumSulfate   = "Magnesium sulfate"
	PotassiumNitrate   = "Potassium nitrate"
	PotassiumSulfate   = "Potassium sulfate"
	CalciumChloride    = "Calcium chloride"
	PotassiumChloride  = "Potassium chloride"
	IronChelate        = "Iron EDTA"
	ManganeseSulfate   = "Manganese sulfate"
	ZincSulfate        = "Zinc sulfate"
	CopperSulfate      = "Copper sulfate"
	BoricAcid          = "Boric acid"
	SodiumMolybdate    = "Sodium molybdate"
)

// 酸，由调酸模块计算用量，这里只用于分罐
const (
	NitricAcid     = "Nitric acid"
	PhosphoricAcid = "Phosphoric acid"
	SulfuricAcid   = "Sulfuric acid"
)

// 离子形态的摩尔质量
const (
	molarMassNO3   = 62.004
	molarMassSO4   = 96.06
	molarMassH2PO4 = 96.987
)

type Catalog struct {
	elements    map[string]*model.Element
	fertilizers map[string]*model.Fertilizer
	acids       map[string]bool
}

func New() *Catalog {
	c := &Catalog{
		elements:    make(map[string]*model.Element),
		fertilizers: make(map[string]*model.Fertilizer),
		acids:       make(map[string]bool),
	}
	for i := range elements {
		e := elements[i]
		c.elements[e.Symbol] = &e
	}
	for i := range fertilizers {
		f := fertilizers[i]
		f.Elements = copyMap(f.Elements)
		c.fertilizers[f.Name] = &f
	}
	for _, a := range []string{NitricAcid, PhosphoricAcid, SulfuricAcid} {
		c.acids[a] = true
	}
	return c
}

func (c *Catalog) Element(symbol string) (*model.Element, error) {
	e, ok := c.elements[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}
	return e, nil
}

func (c *Catalog) Fertilizer(name string) (*model.Fertilizer, error) {
	f, ok := c.fertilizers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFertilizer, name)
	}
	return f, nil
}

// 仅用于代码中写死的肥料名，缺失说明参考数据有误
func (c *Catalog) MustFertilizer(name string) *model.Fertilizer {
	f, err := c.Fertilizer(name)
	if err != nil {
		panic(err)
	}
	return f
}

func (c *Catalog) IsAcid(name string) bool {
	return c.acids[name]
}

func (c *Catalog) CheckAcid(name string) error {
	if !c.IsAcid(name) {
		return fmt.Errorf("%w: %q", ErrUnknownAcid, name)
	}
	return nil
}

// 按符号排序，保证遍历顺序确定
func (c *Catalog) Elements() []*model.Element {
	res := make([]*model.Element, 0, len(c.elements))
	for _, e := range c.elements {
		res = append(res, e)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Symbol < res[j].Symbol })
	return res
}

func (c *Catalog) Fertilizers() []*model.Fertilizer {
	res := make([]*model.Fertilizer, 0, len(c.fertilizers))
	for _, f := range c.fertilizers {
		res = append(res, f)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// 元素质量浓度换算为离子形态的质量浓度，没有对应离子形态时返回 0
func SpeciesFactor(symbol string) (string, float64) {
	switch symbol {
	case N:
		return "NO3", molarMassNO3 / 14.007
	case S:
		return "SO4", molarMassSO4 / 32.06
	case P:
		return "H2PO4", molarMassH2PO4 / 30.974
	}
	return "", 0
}

func copyMap(m map[string]float64) map[string]float64 {
	res := make(map[string]float64, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}
