package compatibility

import (
	"fmt"
	"sort"

	"hydro/catalog"
	"hydro/model"
)

// 肥料两两之间的兼容性，以及母液中的溶解度上限

type pair struct {
	a, b string
}

type Matrix struct {
	cat    *catalog.Catalog
	levels map[pair]model.Level
}

func New(cat *catalog.Catalog) *Matrix {
	m := &Matrix{
		cat:    cat,
		levels: make(map[pair]model.Level),
	}
	for _, e := range seed {
		m.set(e.a, e.b, e.level)
	}
	return m
}

// 同时写入 (a, b) 和 (b, a)
func (m *Matrix) set(a, b string, level model.Level) {
	m.levels[pair{a, b}] = level
	m.levels[pair{b, a}] = level
}

// 未登记的组合默认兼容
func (m *Matrix) Compatibility(a, b string) model.Level {
	if l, ok := m.levels[pair{a, b}]; ok {
		return l
	}
	return model.Compatible
}

type Entry struct {
	A     string      `json:"a"`
	B     string      `json:"b"`
	Level model.Level `json:"level"`
}

// 所有登记的组合，每对只出现一次，按名称排序
func (m *Matrix) Entries() []Entry {
	res := make([]Entry, 0, len(m.levels)/2)
	for p, l := range m.levels {
		if p.a < p.b {
			res = append(res, Entry{A: p.a, B: p.b, Level: l})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].A != res[j].A {
			return res[i].A < res[j].A
		}
		return res[i].B < res[j].B
	})
	return res
}

// 兼容性等级对应的警告级别，兼容时返回空
func Severity(level model.Level) model.Severity {
	switch level {
	case model.Compatible:
		return ""
	case model.Incompatible:
		return model.SeverityCritical
	default:
		return model.SeverityCaution
	}
}

// 安全上限和推荐上限，g/L
func (m *Matrix) SolubilityLimit(fertilizer string) (safe, recommended float64, err error) {
	f, err := m.cat.Fertilizer(fertilizer)
	if err != nil {
		return 0, 0, err
	}
	return f.SafeLimit, f.RecommendedLimit, nil
}

// 母液浓度 gL 超过安全上限为 hard，超过推荐上限为 soft，否则返回 nil
func (m *Matrix) CheckSolubility(tank, fertilizer string, gL float64) (*model.Warning, error) {
	safe, recommended, err := m.SolubilityLimit(fertilizer)
	if err != nil {
		return nil, err
	}
	switch {
	case gL > safe:
		return &model.Warning{
			Severity: model.SeverityHard,
			Tank:     tank,
			Subjects: []string{fertilizer},
			Level:    model.SolubilityLimited,
			Value:    gL,
			Limit:    safe,
			Message:  fmt.Sprintf("%s: %.1f g/L exceeds safe solubility %.1f g/L", fertilizer, gL, safe),
		}, nil
	case gL > recommended:
		return &model.Warning{
			Severity: model.SeveritySoft,
			Tank:     tank,
			Subjects: []string{fertilizer},
			Level:    model.SolubilityLimited,
			Value:    gL,
			Limit:    recommended,
			Message:  fmt.Sprintf("%s: %.1f g/L exceeds recommended %.1f g/L", fertilizer, gL, recommended),
		}, nil
	}
	return nil, nil
}

// a、b 同罐时的兼容性警告，兼容时返回 nil
func (m *Matrix) CheckPair(tank, a, b string) *model.Warning {
	level := m.Compatibility(a, b)
	sev := Severity(level)
	if sev == "" {
		return nil
	}
	return &model.Warning{
		Severity: sev,
		Tank:     tank,
		Subjects: []string{a, b},
		Level:    level,
		Message:  fmt.Sprintf("%s + %s: %s", a, b, level),
	}
}
