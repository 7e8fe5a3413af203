package distributor

import (
	log "github.com/sirupsen/logrus"

	"hydro/model"
)

// 分罐并汇总成本、严重警告和采购清单
// dilutedVolume 为需要配制的稀释液总体积 (L)，<= 0 时取配置值，仍无效则按一罐母液可稀释的体积计算
func (d *Distributor) Plan(doses []model.FertilizerDose, acids []string, tankCount, factor int, tankVolume, dilutedVolume float64) (*model.Report, error) {
	r := d.normalize(tankCount, factor, tankVolume)
	tanks, err := d.distribute(doses, acids, r)
	if err != nil {
		return nil, err
	}

	batch := r.volume * float64(r.factor)
	if dilutedVolume <= 0 {
		dilutedVolume = d.opts.DilutedVolume
	}
	if dilutedVolume <= 0 {
		dilutedVolume = batch
	}

	report := &model.Report{
		Tanks:               tanks,
		ConcentrationFactor: r.factor,
		TankVolume:          r.volume,
		DilutedVolume:       dilutedVolume,
		Fills:               dilutedVolume / batch,
		CriticalWarnings:    []model.Warning{},
	}
	for _, t := range tanks {
		report.TotalCost += t.Cost
		for _, w := range t.CompatibilityWarnings {
			if w.IsCritical() {
				report.CriticalWarnings = append(report.CriticalWarnings, w)
			}
		}
		for _, w := range t.SolubilityWarnings {
			if w.IsCritical() {
				report.CriticalWarnings = append(report.CriticalWarnings, w)
			}
		}
	}

	list, perM3, err := d.shoppingList(doses, dilutedVolume)
	if err != nil {
		return nil, err
	}
	report.ShoppingList = list
	report.CostPerM3 = perM3

	log.WithFields(log.Fields{
		"total_cost":        report.TotalCost,
		"cost_per_m3":       report.CostPerM3,
		"fills":             report.Fills,
		"critical_warnings": len(report.CriticalWarnings),
	}).Info("分罐报告")
	return report, nil
}

// 按投加顺序汇总每种肥料在 dilutedVolume 稀释液中的用量
// 1 m³ 稀释液中 1 mg/L 对应 1 g
func (d *Distributor) shoppingList(doses []model.FertilizerDose, dilutedVolume float64) ([]model.ShoppingItem, float64, error) {
	list := []model.ShoppingItem{}
	index := make(map[string]int)
	var perM3 float64
	for _, dose := range doses {
		f, err := d.fertilizer(dose)
		if err != nil {
			return nil, 0, err
		}
		perM3 += dose.ConcentrationMgL / 1000 * f.CostPerKg

		mass := dose.ConcentrationMgL * dilutedVolume / 1e6
		i, ok := index[f.Name]
		if !ok {
			i = len(list)
			index[f.Name] = i
			list = append(list, model.ShoppingItem{Fertilizer: f.Name})
		}
		list[i].MassKg += mass
		list[i].Cost += mass * f.CostPerKg
	}
	return list, perM3, nil
}
