package model

// 兼容性等级
type Level int

const (
	Compatible Level = iota
	Incompatible
	WaterOnly
	Limited
	HeatGenerating
	SolubilityLimited
)

func (l Level) String() string {
	switch l {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	case WaterOnly:
		return "water_only"
	case Limited:
		return "limited"
	case HeatGenerating:
		return "heat_generating"
	case SolubilityLimited:
		return "solubility_limited"
	}
	return "unknown"
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityCaution  Severity = "caution"
	SeverityHard     Severity = "hard" // 超过安全溶解度
	SeveritySoft     Severity = "soft" // 超过推荐溶解度
)

// 兼容性 / 溶解度警告
type Warning struct {
	Severity Severity `json:"severity"`
	Tank     string   `json:"tank"`
	Subjects []string `json:"subjects"`
	Level    Level    `json:"level"`
	Value    float64  `json:"value,omitempty"` // g/L，仅溶解度警告
	Limit    float64  `json:"limit,omitempty"`
	Message  string   `json:"message"`
}

// 严重警告：不兼容，或超过安全溶解度
func (w Warning) IsCritical() bool {
	return w.Severity == SeverityCritical || w.Severity == SeverityHard
}

// 母液罐
type Tank struct {
	Name        string   `json:"name"`
	Fertilizers []string `json:"fertilizers"`
	Acids       []string `json:"acids"`

	Concentrations map[string]float64 `json:"concentrations"` // g/L
	Masses         map[string]float64 `json:"masses"`         // kg

	Density float64 `json:"density"` // g/L
	Cost    float64 `json:"cost"`

	CompatibilityWarnings []Warning `json:"compatibility_warnings"`
	SolubilityWarnings    []Warning `json:"solubility_warnings"`

	Preparation []string `json:"preparation"`
}

// 采购清单条目
type ShoppingItem struct {
	Fertilizer string  `json:"fertilizer"`
	MassKg     float64 `json:"mass_kg"`
	Cost       float64 `json:"cost"`
}

// 分罐报告
type Report struct {
	Tanks               []Tank         `json:"tanks"`
	ConcentrationFactor int            `json:"concentration_factor"`
	TankVolume          float64        `json:"tank_volume"`    // L
	DilutedVolume       float64        `json:"diluted_volume"` // L
	Fills               float64        `json:"fills"`          // 配满目标体积需要的母液罐次数
	TotalCost           float64        `json:"total_cost"`     // 一次配满所有母液罐
	CostPerM3           float64        `json:"cost_per_m3"`    // 每立方米稀释液
	CriticalWarnings    []Warning      `json:"critical_warnings"`
	ShoppingList        []ShoppingItem `json:"shopping_list"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 配方请求
type FormulateReq struct {
	Targets NutrientTarget `json:"targets"`
	Water   WaterBaseline  `json:"water"`
}

// 分罐请求
type DistributeReq struct {
	Targets             NutrientTarget `json:"targets"`
	Water               WaterBaseline  `json:"water"`
	Acids               []string       `json:"acids"`
	TankCount           int            `json:"tank_count"`
	ConcentrationFactor int            `json:"concentration_factor"`
	TankVolume          float64        `json:"tank_volume"`
	DilutedVolume       float64        `json:"diluted_volume"`
}
