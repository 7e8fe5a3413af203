package distributor

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"hydro/catalog"
	"hydro/compatibility"
	"hydro/model"
)

const (
	defaultConcentrationFactor = 100
	defaultTankCount           = 2
	defaultTankVolume          = 1000
	defaultMaxTanks            = 8
	referenceTemperature       = 20
)

// 请求中未给出的参数使用这里的默认值
// Temperature 按原值使用，0 表示 0 ℃；未配置时从 DefaultOptions 开始构建
type Options struct {
	TankCount           int
	MaxTanks            int // 单次分罐允许的最大罐数
	ConcentrationFactor int
	TankVolume          float64 // L
	DilutedVolume       float64 // L
	Temperature         float64 // 溶解度排序参考温度，℃
}

func DefaultOptions() Options {
	return Options{
		TankCount:           defaultTankCount,
		MaxTanks:            defaultMaxTanks,
		ConcentrationFactor: defaultConcentrationFactor,
		TankVolume:          defaultTankVolume,
		Temperature:         referenceTemperature,
	}
}

type Distributor struct {
	cat    *catalog.Catalog
	matrix *compatibility.Matrix
	opts   Options
}

func New(cat *catalog.Catalog, matrix *compatibility.Matrix, opts Options) *Distributor {
	if opts.ConcentrationFactor <= 0 {
		opts.ConcentrationFactor = defaultConcentrationFactor
	}
	if opts.TankCount < 2 {
		opts.TankCount = defaultTankCount
	}
	if opts.TankVolume <= 0 {
		opts.TankVolume = defaultTankVolume
	}
	if opts.MaxTanks < 2 {
		opts.MaxTanks = defaultMaxTanks
	}
	if opts.TankCount > opts.MaxTanks {
		opts.TankCount = opts.MaxTanks
	}
	return &Distributor{
		cat:    cat,
		matrix: matrix,
		opts:   opts,
	}
}

// 单次分罐的参数，已替换为合法值
type run struct {
	tankCount int
	factor    int
	volume    float64
}

func (d *Distributor) normalize(tankCount, factor int, volume float64) run {
	r := run{tankCount: tankCount, factor: factor, volume: volume}
	if r.factor <= 0 {
		log.WithField("concentration_factor", factor).Warn("浓缩倍数无效，使用默认值 ", d.opts.ConcentrationFactor)
		r.factor = d.opts.ConcentrationFactor
	}
	if r.tankCount < 2 {
		log.WithField("tank_count", tankCount).Warn("母液罐数量无效，使用默认值 ", d.opts.TankCount)
		r.tankCount = d.opts.TankCount
	}
	if r.tankCount > d.opts.MaxTanks {
		log.WithField("tank_count", tankCount).Warn("母液罐数量超过上限，使用最大值 ", d.opts.MaxTanks)
		r.tankCount = d.opts.MaxTanks
	}
	if r.volume <= 0 {
		log.WithField("tank_volume", volume).Warn("母液罐容积无效，使用默认值 ", d.opts.TankVolume)
		r.volume = d.opts.TankVolume
	}
	return r
}

// 稀释液 mg/L 换算为母液 g/L
func Concentrate(mgL float64, factor int) float64 {
	return mgL * float64(factor) / 1000
}

// 母液 g/L 换算为罐中质量 kg
func Mass(gL, volume float64) float64 {
	return gL * volume / 1000
}

func (d *Distributor) Distribute(doses []model.FertilizerDose, acids []string, tankCount, factor int, volume float64) ([]model.Tank, error) {
	return d.distribute(doses, acids, d.normalize(tankCount, factor, volume))
}

func (d *Distributor) distribute(doses []model.FertilizerDose, acids []string, r run) ([]model.Tank, error) {
	for _, a := range acids {
		if err := d.cat.CheckAcid(a); err != nil {
			return nil, err
		}
	}

	st := strategyFor(r.tankCount)
	tanks := make([]model.Tank, st.tanks)
	for i := range tanks {
		tanks[i] = model.Tank{
			Name:           tankName(i),
			Fertilizers:    []string{},
			Acids:          []string{},
			Concentrations: make(map[string]float64),
			Masses:         make(map[string]float64),
		}
	}

	for _, dose := range doses {
		f, err := d.fertilizer(dose)
		if err != nil {
			return nil, err
		}
		t := &tanks[st.assign(f)]
		if _, ok := t.Concentrations[f.Name]; !ok {
			t.Fertilizers = append(t.Fertilizers, f.Name)
		}
		t.Concentrations[f.Name] += Concentrate(dose.ConcentrationMgL, r.factor)
	}
	for _, a := range acids {
		t := &tanks[st.acidTank]
		if !contains(t.Acids, a) {
			t.Acids = append(t.Acids, a)
		}
	}

	for i := range tanks {
		if err := d.finish(&tanks[i], r); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"tanks":                r.tankCount,
		"concentration_factor": r.factor,
		"tank_volume":          r.volume,
		"doses":                len(doses),
		"acids":                len(acids),
	}).Info("分罐完成")
	return tanks, nil
}

// 质量、密度、成本、警告和配制步骤
func (d *Distributor) finish(t *model.Tank, r run) error {
	t.Density = 0
	t.Cost = 0
	for _, name := range t.Fertilizers {
		f, err := d.cat.Fertilizer(name)
		if err != nil {
			return err
		}
		gL := t.Concentrations[name]
		mass := Mass(gL, r.volume)
		t.Masses[name] = mass
		t.Density += gL
		t.Cost += mass * f.CostPerKg
	}

	t.CompatibilityWarnings = d.checkCompatibility(t)
	sw, err := d.checkSolubility(t)
	if err != nil {
		return err
	}
	t.SolubilityWarnings = sw

	prep, err := d.preparation(t, r)
	if err != nil {
		return err
	}
	t.Preparation = prep
	return nil
}

// 罐内所有肥料和酸两两检查，O(k²)
func (d *Distributor) checkCompatibility(t *model.Tank) []model.Warning {
	members := append(append([]string{}, t.Fertilizers...), t.Acids...)
	res := []model.Warning{}
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if w := d.matrix.CheckPair(t.Name, members[i], members[j]); w != nil {
				log.WithFields(log.Fields{
					"tank":     t.Name,
					"a":        members[i],
					"b":        members[j],
					"severity": w.Severity,
				}).Warn("兼容性警告")
				res = append(res, *w)
			}
		}
	}
	return res
}

func (d *Distributor) checkSolubility(t *model.Tank) ([]model.Warning, error) {
	res := []model.Warning{}
	for _, name := range t.Fertilizers {
		w, err := d.matrix.CheckSolubility(t.Name, name, t.Concentrations[name])
		if err != nil {
			return nil, err
		}
		if w != nil {
			log.WithFields(log.Fields{
				"tank":       t.Name,
				"fertilizer": name,
				"value":      w.Value,
				"limit":      w.Limit,
				"severity":   w.Severity,
			}).Warn("溶解度警告")
			res = append(res, *w)
		}
	}
	return res, nil
}

// 溶解度大的先溶解，酸最后加入
func (d *Distributor) preparation(t *model.Tank, r run) ([]string, error) {
	if len(t.Fertilizers) == 0 && len(t.Acids) == 0 {
		return []string{}, nil
	}
	temp := d.opts.Temperature

	type item struct {
		f          *model.Fertilizer
		solubility float64
	}
	items := make([]item, 0, len(t.Fertilizers))
	for _, name := range t.Fertilizers {
		f, err := d.cat.Fertilizer(name)
		if err != nil {
			return nil, err
		}
		items = append(items, item{f: f, solubility: f.SolubilityAt(temp)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].solubility != items[j].solubility {
			return items[i].solubility > items[j].solubility
		}
		return items[i].f.Name < items[j].f.Name
	})

	steps := []string{
		fmt.Sprintf("Fill tank %s with %.0f L of clean water (about 70%% of %.0f L)", t.Name, r.volume*0.7, r.volume),
	}
	for _, it := range items {
		name := it.f.Name
		steps = append(steps, fmt.Sprintf("Dissolve %.3f kg of %s (%s, %.2f g/L) and stir until clear",
			t.Masses[name], name, it.f.Formula, t.Concentrations[name]))
	}
	for _, a := range t.Acids {
		steps = append(steps, fmt.Sprintf("Slowly add %s, always acid into water, never water into acid", a))
	}
	steps = append(steps,
		fmt.Sprintf("Top up tank %s to %.0f L with water and stir", t.Name, r.volume),
		fmt.Sprintf("Label tank %s with its contents and the 1:%d injection ratio", t.Name, r.factor),
	)
	return steps, nil
}

func (d *Distributor) fertilizer(dose model.FertilizerDose) (*model.Fertilizer, error) {
	if dose.Fertilizer != nil {
		return dose.Fertilizer, nil
	}
	return d.cat.Fertilizer(dose.Name)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
