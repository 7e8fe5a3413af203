package model

// 营养液配方计算的数据模型
// 浓度单位约定：
// 1. 稀释后的营养液，mg/L
// 2. 浓缩母液罐，g/L
// 3. 母液罐中肥料质量，kg

// 元素参考数据
type Element struct {
	Symbol       string  `json:"symbol"`
	AtomicWeight float64 `json:"atomic_weight"` // g/mol
	Valence      int     `json:"valence"`       // 离子价态，>= 1
	Cation       bool    `json:"cation"`        // 阳离子
	Ion          string  `json:"ion"`           // 计入离子平衡时的离子形态，如 N -> NO3
}

// 肥料化学族，决定分罐
type Family int

const (
	FamilyCalcium Family = iota
	FamilyNitrate
	FamilyPhosphate
	FamilySulfate
	FamilyChloride
	FamilyMicronutrient
)

func (f Family) String() string {
	switch f {
	case FamilyCalcium:
		return "calcium"
	case FamilyNitrate:
		return "nitrate"
	case FamilyPhosphate:
		return "phosphate"
	case FamilySulfate:
		return "sulfate"
	case FamilyChloride:
		return "chloride"
	case FamilyMicronutrient:
		return "micronutrient"
	}
	return "unknown"
}

// 0/20/40 ℃ 下的溶解度，g/L
type Solubility struct {
	At0  float64 `json:"at_0"`
	At20 float64 `json:"at_20"`
	At40 float64 `json:"at_40"`
}

// 肥料（盐）
type Fertilizer struct {
	Name      string  `json:"name"`
	Formula   string  `json:"formula"`
	Family    Family  `json:"family"`
	Chelated  bool    `json:"chelated"`
	MolarMass float64 `json:"molar_mass"` // g/mol，含结晶水
	Purity    float64 `json:"purity"`     // (0, 1]
	// 每摩尔肥料提供的元素质量，已计入原子个数，如 Ca(NO3)2 中 N 为 2 * 14.007
	Elements         map[string]float64 `json:"elements"`
	Solubility       Solubility         `json:"solubility"`
	SafeLimit        float64            `json:"safe_limit"`        // g/L，超过为严重警告
	RecommendedLimit float64            `json:"recommended_limit"` // g/L，超过为一般警告
	CostPerKg        float64            `json:"cost_per_kg"`
}

// 纯度百分比
func (f *Fertilizer) PurityPercent() float64 {
	return f.Purity * 100
}

// 线性插值得到某温度下的溶解度，超出 0~40 ℃ 时取端点值
func (f *Fertilizer) SolubilityAt(tempC float64) float64 {
	s := f.Solubility
	switch {
	case tempC <= 0:
		return s.At0
	case tempC >= 40:
		return s.At40
	case tempC <= 20:
		return s.At0 + (s.At20-s.At0)*tempC/20
	default:
		return s.At20 + (s.At40-s.At20)*(tempC-20)/20
	}
}

// 元素 -> mg/L
type NutrientTarget map[string]float64

// 水源中已有的元素 -> mg/L
type WaterBaseline map[string]float64

// 元素缺口 -> mg/L
type Deficit map[string]float64

// 不存在的键返回 0
func Get(m map[string]float64, key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 0
}

func (d Deficit) Get(element string) float64 {
	return Get(d, element)
}

// 扣减缺口，不小于 0
func (d Deficit) Reduce(element string, amount float64) {
	v := d[element] - amount
	if v < 0 {
		v = 0
	}
	d[element] = v
}

func (d Deficit) Clone() Deficit {
	c := make(Deficit, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// 单个肥料的投加结果
type FertilizerDose struct {
	Fertilizer         *Fertilizer        `json:"-"`
	Name               string             `json:"name"`
	ConcentrationMgL   float64            `json:"concentration_mg_l"`
	ConcentrationMmolL float64            `json:"concentration_mmol_l"`
	Contributions      map[string]float64 `json:"contributions"` // 元素 -> mg/L
	Ions               map[string]float64 `json:"ions"`          // 离子形态 -> mg/L，如 NO3、SO4、H2PO4
}

// 同一组离子在三种单位下的浓度
type IonView struct {
	MgL   map[string]float64 `json:"mg_l"`
	MmolL map[string]float64 `json:"mmol_l"`
	MeqL  map[string]float64 `json:"meq_l"`
}

func NewIonView() IonView {
	return IonView{
		MgL:   make(map[string]float64),
		MmolL: make(map[string]float64),
		MeqL:  make(map[string]float64),
	}
}

// 离子平衡，Final = Contributed + Water
type IonBalance struct {
	Contributed IonView `json:"contributed"`
	Water       IonView `json:"water"`
	Final       IonView `json:"final"`

	CationSum float64 `json:"cation_sum"` // meq/L
	AnionSum  float64 `json:"anion_sum"`  // meq/L
	Imbalance float64 `json:"imbalance"`  // %
	Balanced  bool    `json:"balanced"`
}
