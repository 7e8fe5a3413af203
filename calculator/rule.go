package calculator

import (
	"hydro/catalog"
	"hydro/model"
)

// 配方规则，按固定顺序依次执行
// Applies 为前置条件，Apply 投加肥料并扣减相关元素缺口
type Rule interface {
	Name() string
	Fertilizers() []string
	Applies(d model.Deficit) bool
	Apply(s *Session) error
}

// 决策结果
const (
	DecisionFull          = "full"
	DecisionNitrogenLimit = "nitrogen_limited"
	DecisionForSulfur     = "for_sulfur"
	DecisionForPotassium  = "for_potassium"
)

func DefaultRules(cfg Config) []Rule {
	return []Rule{
		phosphateRule{},
		calciumNitrateRule{ratio: cfg.CalciumNitrogenRatio},
		magnesiumRule{},
		potassiumNitrateRule{},
		potassiumSulfateRule{ratio: cfg.PotassiumSulfurRatio},
		calciumChlorideRule{},
		potassiumChlorideRule{},
		micronutrientRule{element: catalog.Fe, fertilizer: catalog.IronChelate},
		micronutrientRule{element: catalog.Mn, fertilizer: catalog.ManganeseSulfate},
		micronutrientRule{element: catalog.Zn, fertilizer: catalog.ZincSulfate},
		micronutrientRule{element: catalog.Cu, fertilizer: catalog.CopperSulfate},
		micronutrientRule{element: catalog.B, fertilizer: catalog.BoricAcid},
		micronutrientRule{element: catalog.Mo, fertilizer: catalog.SodiumMolybdate},
	}
}

// 磷酸二氢钾补磷，同时扣减钾缺口
type phosphateRule struct{}

func (phosphateRule) Name() string          { return "phosphate" }
func (phosphateRule) Fertilizers() []string { return []string{catalog.PotassiumPhosphate} }

func (phosphateRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.P) > 0
}

func (r phosphateRule) Apply(s *Session) error {
	return s.Dose(r.Name(), DecisionFull, catalog.PotassiumPhosphate, catalog.P, s.Deficit.Get(catalog.P), catalog.K)
}

// 硝酸钙补钙
// 满足全部钙缺口带入的氮超过氮缺口 ratio 倍时，只按氮缺口投加，剩余钙缺口由氯化钙补足
type calciumNitrateRule struct {
	ratio float64
}

func (calciumNitrateRule) Name() string          { return "calcium_nitrate" }
func (calciumNitrateRule) Fertilizers() []string { return []string{catalog.CalciumNitrate} }

func (calciumNitrateRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.Ca) > 0
}

func (r calciumNitrateRule) Apply(s *Session) error {
	ca, n := s.Deficit.Get(catalog.Ca), s.Deficit.Get(catalog.N)
	nFromCa, err := s.Yield(catalog.CalciumNitrate, catalog.Ca, ca, catalog.N)
	if err != nil {
		return err
	}
	if nFromCa > n*r.ratio {
		return s.Dose(r.Name(), DecisionNitrogenLimit, catalog.CalciumNitrate, catalog.N, n, catalog.Ca)
	}
	return s.Dose(r.Name(), DecisionFull, catalog.CalciumNitrate, catalog.Ca, ca, catalog.N)
}

// 硫酸镁补镁，同时扣减硫缺口
type magnesiumRule struct{}

func (magnesiumRule) Name() string          { return "magnesium_sulfate" }
func (magnesiumRule) Fertilizers() []string { return []string{catalog.MagnesiumSulfate} }

func (magnesiumRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.Mg) > 0
}

func (r magnesiumRule) Apply(s *Session) error {
	return s.Dose(r.Name(), DecisionFull, catalog.MagnesiumSulfate, catalog.Mg, s.Deficit.Get(catalog.Mg), catalog.S)
}

// 硝酸钾补足剩余氮，同时扣减钾缺口
type potassiumNitrateRule struct{}

func (potassiumNitrateRule) Name() string          { return "potassium_nitrate" }
func (potassiumNitrateRule) Fertilizers() []string { return []string{catalog.PotassiumNitrate} }

func (potassiumNitrateRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.N) > 0
}

func (r potassiumNitrateRule) Apply(s *Session) error {
	return s.Dose(r.Name(), DecisionFull, catalog.PotassiumNitrate, catalog.N, s.Deficit.Get(catalog.N), catalog.K)
}

// 硫酸钾，钾和硫同时有缺口时执行
// 按硫缺口投加带入的钾不超过钾缺口 ratio 倍时按硫投加，否则按钾投加
type potassiumSulfateRule struct {
	ratio float64
}

func (potassiumSulfateRule) Name() string          { return "potassium_sulfate" }
func (potassiumSulfateRule) Fertilizers() []string { return []string{catalog.PotassiumSulfate} }

func (potassiumSulfateRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.K) > 0 && d.Get(catalog.S) > 0
}

func (r potassiumSulfateRule) Apply(s *Session) error {
	k, sulfur := s.Deficit.Get(catalog.K), s.Deficit.Get(catalog.S)
	kFromS, err := s.Yield(catalog.PotassiumSulfate, catalog.S, sulfur, catalog.K)
	if err != nil {
		return err
	}
	if kFromS <= k*r.ratio {
		return s.Dose(r.Name(), DecisionForSulfur, catalog.PotassiumSulfate, catalog.S, sulfur, catalog.K)
	}
	return s.Dose(r.Name(), DecisionForPotassium, catalog.PotassiumSulfate, catalog.K, k, catalog.S)
}

type calciumChlorideRule struct{}

func (calciumChlorideRule) Name() string          { return "calcium_chloride" }
func (calciumChlorideRule) Fertilizers() []string { return []string{catalog.CalciumChloride} }

func (calciumChlorideRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.Ca) > 0
}

func (r calciumChlorideRule) Apply(s *Session) error {
	return s.Dose(r.Name(), DecisionFull, catalog.CalciumChloride, catalog.Ca, s.Deficit.Get(catalog.Ca))
}

type potassiumChlorideRule struct{}

func (potassiumChlorideRule) Name() string          { return "potassium_chloride" }
func (potassiumChlorideRule) Fertilizers() []string { return []string{catalog.PotassiumChloride} }

func (potassiumChlorideRule) Applies(d model.Deficit) bool {
	return d.Get(catalog.K) > 0
}

func (r potassiumChlorideRule) Apply(s *Session) error {
	return s.Dose(r.Name(), DecisionFull, catalog.PotassiumChloride, catalog.K, s.Deficit.Get(catalog.K))
}

// 微量元素，各自独立计算，不扣减其他元素缺口
type micronutrientRule struct {
	element    string
	fertilizer string
}

func (r micronutrientRule) Name() string          { return "micronutrient_" + r.element }
func (r micronutrientRule) Fertilizers() []string { return []string{r.fertilizer} }

func (r micronutrientRule) Applies(d model.Deficit) bool {
	return d.Get(r.element) > 0
}

func (r micronutrientRule) Apply(s *Session) error {
	return s.Dose(r.Name(), DecisionFull, r.fertilizer, r.element, s.Deficit.Get(r.element))
}
