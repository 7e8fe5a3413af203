package calculator

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"hydro/catalog"
	"hydro/model"
)

// calculator 的接口定义

type Calculator interface {
	// 计算配方，返回按规则顺序排列的投加结果
	Formulate(targets model.NutrientTarget, water model.WaterBaseline) ([]model.FertilizerDose, error)

	// 计算配方，并返回缺口和规则执行记录
	Solve(targets model.NutrientTarget, water model.WaterBaseline) (*Formulation, error)

	// 离子平衡校验
	Balance(doses []model.FertilizerDose, water model.WaterBaseline) (model.IonBalance, error)
}

// 参与配方计算的元素
var tracked = []string{
	catalog.N, catalog.P, catalog.K, catalog.Ca, catalog.Mg, catalog.S,
	catalog.Fe, catalog.Mn, catalog.Zn, catalog.Cu, catalog.B, catalog.Mo,
}

type Formulation struct {
	Doses    []model.FertilizerDose `json:"doses"`
	Deficit  model.Deficit          `json:"deficit"`  // 初始缺口
	Residual model.Deficit          `json:"residual"` // 全部规则执行后仍未满足的缺口
	Trace    []Step                 `json:"trace"`
}

type Engine struct {
	cat   *catalog.Catalog
	cfg   Config
	rules []Rule
}

// rules 为空时使用默认规则
// 规则引用的肥料不在参考数据中时返回错误
func NewEngine(cat *catalog.Catalog, cfg Config, rules ...Rule) (*Engine, error) {
	if len(rules) == 0 {
		rules = DefaultRules(cfg)
	}
	for _, r := range rules {
		for _, name := range r.Fertilizers() {
			if _, err := cat.Fertilizer(name); err != nil {
				return nil, fmt.Errorf("rule %s: %w", r.Name(), err)
			}
		}
	}
	return &Engine{
		cat:   cat,
		cfg:   cfg,
		rules: rules,
	}, nil
}

func (e *Engine) Rules() []Rule {
	return e.rules
}

func (e *Engine) Formulate(targets model.NutrientTarget, water model.WaterBaseline) ([]model.FertilizerDose, error) {
	f, err := e.Solve(targets, water)
	if err != nil {
		return nil, err
	}
	return f.Doses, nil
}

func (e *Engine) Solve(targets model.NutrientTarget, water model.WaterBaseline) (*Formulation, error) {
	deficit, err := e.Deficits(targets, water)
	if err != nil {
		return nil, err
	}

	s := newSession(e.cat, deficit.Clone())
	for _, r := range e.rules {
		if !r.Applies(s.Deficit) {
			continue
		}
		if err := r.Apply(s); err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name(), err)
		}
	}

	log.WithFields(log.Fields{
		"doses":    len(s.Doses),
		"residual": residualSum(s.Deficit),
	}).Info("配方计算完成")

	return &Formulation{
		Doses:    s.Doses,
		Deficit:  deficit,
		Residual: s.Deficit,
		Trace:    s.Trace,
	}, nil
}

// 缺口 = max(0, 目标 - 水源)
func (e *Engine) Deficits(targets model.NutrientTarget, water model.WaterBaseline) (model.Deficit, error) {
	for el := range targets {
		if _, err := e.cat.Element(el); err != nil {
			return nil, fmt.Errorf("target: %w", err)
		}
	}
	for el := range water {
		if _, err := e.cat.Element(el); err != nil {
			return nil, fmt.Errorf("water: %w", err)
		}
	}

	d := make(model.Deficit, len(tracked))
	for _, el := range tracked {
		d[el] = 0
	}
	for el, t := range targets {
		d[el] = math.Max(0, t-model.Get(water, el))
	}
	return d, nil
}

func residualSum(d model.Deficit) float64 {
	var sum float64
	for _, v := range d {
		sum += v
	}
	return sum
}
