package distributor

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"hydro/calculator"
	"hydro/catalog"
	"hydro/compatibility"
	"hydro/model"
)

func newTestDistributor() (*Distributor, *catalog.Catalog) {
	cat := catalog.New()
	return New(cat, compatibility.New(cat), DefaultOptions()), cat
}

func dose(cat *catalog.Catalog, name string, mgL float64) model.FertilizerDose {
	return calculator.NewDose(cat.MustFertilizer(name), mgL)
}

func formulate(t *testing.T, cat *catalog.Catalog) []model.FertilizerDose {
	t.Helper()
	e, err := calculator.NewEngine(cat, calculator.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	doses, err := e.Formulate(model.NutrientTarget{
		catalog.N: 150, catalog.P: 45, catalog.K: 260, catalog.Ca: 172, catalog.Mg: 50, catalog.S: 108,
		catalog.Fe: 2, catalog.Mn: 0.5, catalog.Zn: 0.3, catalog.Cu: 0.05, catalog.B: 0.4, catalog.Mo: 0.05,
	}, model.WaterBaseline{catalog.Ca: 10, catalog.K: 2, catalog.Mg: 5})
	if err != nil {
		t.Fatal(err)
	}
	return doses
}

func tankOf(tanks []model.Tank, name string) int {
	for i, t := range tanks {
		for _, f := range t.Fertilizers {
			if f == name {
				return i
			}
		}
		for _, a := range t.Acids {
			if a == name {
				return i
			}
		}
	}
	return -1
}

func TestConcentrate(t *testing.T) {
	if got := Concentrate(50, 100); got != 5 {
		t.Fatalf("Concentrate(50, 100) = %v", got)
	}
	if got := Mass(5, 1000); got != 5 {
		t.Fatalf("Mass(5, 1000) = %v", got)
	}

	d, cat := newTestDistributor()
	tanks, err := d.Distribute([]model.FertilizerDose{dose(cat, catalog.PotassiumNitrate, 50)}, nil, 2, 100, 200)
	if err != nil {
		t.Fatal(err)
	}
	if tanks[0].Concentrations[catalog.PotassiumNitrate] != 5 {
		t.Fatalf("concentration = %v", tanks[0].Concentrations[catalog.PotassiumNitrate])
	}
	if tanks[0].Masses[catalog.PotassiumNitrate] != 1 {
		t.Fatalf("mass = %v", tanks[0].Masses[catalog.PotassiumNitrate])
	}
}

// 两罐时硝酸钙与磷酸二氢钾不在同一罐
func TestTwoTankIsolation(t *testing.T) {
	d, cat := newTestDistributor()
	doses := formulate(t, cat)
	tanks, err := d.Distribute(doses, []string{catalog.NitricAcid}, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(tanks) != 2 {
		t.Fatalf("%d tanks", len(tanks))
	}
	ca, p := tankOf(tanks, catalog.CalciumNitrate), tankOf(tanks, catalog.PotassiumPhosphate)
	if ca < 0 || p < 0 || ca == p {
		t.Fatalf("calcium nitrate in %d, potassium phosphate in %d", ca, p)
	}
	if tankOf(tanks, catalog.NitricAcid) != ca {
		t.Fatal("acid should share the calcium tank")
	}
	if tankOf(tanks, catalog.MagnesiumSulfate) == ca {
		t.Fatal("sulfate placed with calcium")
	}
	for _, tank := range tanks {
		for _, w := range tank.CompatibilityWarnings {
			if w.Level == model.Incompatible {
				t.Errorf("incompatible pair in tank %s: %v", tank.Name, w.Subjects)
			}
		}
	}
}

func TestStrategies(t *testing.T) {
	d, cat := newTestDistributor()
	doses := formulate(t, cat)
	doses = append(doses, dose(cat, catalog.CalciumChloride, 30), dose(cat, catalog.PotassiumChloride, 20))
	acids := []string{catalog.NitricAcid, catalog.PhosphoricAcid}

	cases := []struct {
		tanks int
		same  [][]string
		apart [][2]string
	}{
		{
			tanks: 3,
			same: [][]string{
				{catalog.CalciumNitrate, catalog.PotassiumNitrate, catalog.IronChelate},
				{catalog.PotassiumPhosphate, catalog.MagnesiumSulfate, catalog.ZincSulfate, catalog.PotassiumChloride},
			},
			apart: [][2]string{{catalog.CalciumNitrate, catalog.PotassiumPhosphate}},
		},
		{
			tanks: 4,
			same: [][]string{
				{catalog.PotassiumNitrate, catalog.MagnesiumSulfate, catalog.PotassiumChloride},
				{catalog.CalciumNitrate, catalog.CalciumChloride},
				{catalog.IronChelate, catalog.BoricAcid, catalog.NitricAcid, catalog.PhosphoricAcid},
			},
			apart: [][2]string{
				{catalog.PotassiumPhosphate, catalog.PotassiumNitrate},
				{catalog.PotassiumPhosphate, catalog.CalciumNitrate},
				{catalog.CalciumNitrate, catalog.IronChelate},
			},
		},
		{
			tanks: 5,
			same: [][]string{
				{catalog.CalciumNitrate, catalog.PotassiumNitrate},
				{catalog.CalciumChloride, catalog.PotassiumChloride, catalog.IronChelate},
			},
			apart: [][2]string{
				{catalog.PotassiumPhosphate, catalog.MagnesiumSulfate},
				{catalog.MagnesiumSulfate, catalog.CalciumChloride},
			},
		},
		{
			tanks: 6,
			same: [][]string{
				{catalog.CalciumChloride, catalog.PotassiumChloride},
				{catalog.IronChelate, catalog.ZincSulfate},
			},
			apart: [][2]string{
				{catalog.PotassiumChloride, catalog.IronChelate},
				{catalog.ZincSulfate, catalog.MagnesiumSulfate},
			},
		},
	}
	for _, c := range cases {
		tanks, err := d.Distribute(doses, acids, c.tanks, 100, 1000)
		if err != nil {
			t.Fatal(err)
		}
		if len(tanks) != c.tanks {
			t.Fatalf("%d: got %d tanks", c.tanks, len(tanks))
		}
		for _, group := range c.same {
			want := tankOf(tanks, group[0])
			for _, name := range group[1:] {
				if got := tankOf(tanks, name); got != want || got < 0 {
					t.Errorf("%d tanks: %s in %d, %s in %d", c.tanks, group[0], want, name, got)
				}
			}
		}
		for _, p := range c.apart {
			if tankOf(tanks, p[0]) == tankOf(tanks, p[1]) {
				t.Errorf("%d tanks: %s and %s share a tank", c.tanks, p[0], p[1])
			}
		}
		// 酸总在最后一个罐
		last := tanks[len(tanks)-1]
		if len(last.Acids) != len(acids) {
			t.Errorf("%d tanks: last tank acids = %v", c.tanks, last.Acids)
		}
		if c.tanks >= 5 && len(last.Fertilizers) != 0 {
			t.Errorf("%d tanks: acid tank holds %v", c.tanks, last.Fertilizers)
		}
	}
}

func TestManyTanks(t *testing.T) {
	d, cat := newTestDistributor()
	tanks, err := d.Distribute(formulate(t, cat), []string{catalog.SulfuricAcid}, 8, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(tanks) != 8 || tanks[7].Name != "H" {
		t.Fatalf("tanks = %d", len(tanks))
	}
	if len(tanks[5].Fertilizers) != 0 || len(tanks[6].Fertilizers) != 0 {
		t.Fatal("spare tanks should stay empty")
	}
	if len(tanks[5].Preparation) != 0 {
		t.Fatalf("preparation = %v", tanks[5].Preparation)
	}
}

// 超过安全溶解度只产生一条 hard 警告
func TestSolubilityHardWarning(t *testing.T) {
	d, cat := newTestDistributor()
	// 2000 mg/L * 100 / 1000 = 200 g/L，超过 130 g/L
	tanks, err := d.Distribute([]model.FertilizerDose{dose(cat, catalog.PotassiumNitrate, 2000)}, nil, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	var hard, soft int
	for _, w := range tanks[0].SolubilityWarnings {
		switch w.Severity {
		case model.SeverityHard:
			hard++
		case model.SeveritySoft:
			soft++
		}
	}
	if hard != 1 || soft != 0 {
		t.Fatalf("hard = %d, soft = %d", hard, soft)
	}
	// 计算继续使用请求的浓度
	if tanks[0].Concentrations[catalog.PotassiumNitrate] != 200 {
		t.Fatalf("concentration = %v", tanks[0].Concentrations[catalog.PotassiumNitrate])
	}
}

func TestSolubilitySoftWarning(t *testing.T) {
	d, cat := newTestDistributor()
	// 115 g/L，介于推荐上限和安全上限之间
	tanks, err := d.Distribute([]model.FertilizerDose{dose(cat, catalog.PotassiumNitrate, 1150)}, nil, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	w := tanks[0].SolubilityWarnings
	if len(w) != 1 || w[0].Severity != model.SeveritySoft {
		t.Fatalf("warnings = %+v", w)
	}
}

func TestCompatibilityWarnings(t *testing.T) {
	d, cat := newTestDistributor()
	doses := []model.FertilizerDose{
		dose(cat, catalog.CalciumNitrate, 800),
		dose(cat, catalog.ZincSulfate, 1),
	}
	tanks, err := d.Distribute(doses, []string{catalog.PhosphoricAcid}, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	// 磷酸与钙同罐为严重警告
	var critical, caution int
	for _, w := range tanks[1].CompatibilityWarnings {
		switch w.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityCaution:
			caution++
		}
	}
	if critical != 1 || caution != 0 {
		t.Fatalf("critical = %d, caution = %d", critical, caution)
	}

	// 三罐时硝酸钙与硫酸锌不同罐
	tanks, err = d.Distribute(doses, nil, 3, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	for _, tank := range tanks {
		if len(tank.CompatibilityWarnings) != 0 {
			t.Fatalf("tank %s: %+v", tank.Name, tank.CompatibilityWarnings)
		}
	}
}

func TestDensityAndCost(t *testing.T) {
	d, cat := newTestDistributor()
	doses := []model.FertilizerDose{
		dose(cat, catalog.PotassiumNitrate, 400),
		dose(cat, catalog.MagnesiumSulfate, 500),
	}
	tanks, err := d.Distribute(doses, nil, 2, 100, 500)
	if err != nil {
		t.Fatal(err)
	}
	a := tanks[0]
	if a.Density != 40+50 {
		t.Fatalf("density = %v", a.Density)
	}
	wantCost := 40*500/1000.0*1.20 + 50*500/1000.0*0.45
	if math.Abs(a.Cost-wantCost) > 1e-9 {
		t.Fatalf("cost = %v, want %v", a.Cost, wantCost)
	}
	if tanks[1].Density != 0 || tanks[1].Cost != 0 {
		t.Fatalf("tank B = %+v", tanks[1])
	}
}

func TestPreparationOrder(t *testing.T) {
	d, cat := newTestDistributor()
	doses := []model.FertilizerDose{
		dose(cat, catalog.PotassiumPhosphate, 100),
		dose(cat, catalog.MagnesiumSulfate, 300),
		dose(cat, catalog.PotassiumNitrate, 200),
	}
	tanks, err := d.Distribute(doses, nil, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	prep := tanks[0].Preparation
	// 注水、三种肥料、定容、标签
	if len(prep) != 6 {
		t.Fatalf("preparation = %v", prep)
	}
	if !strings.HasPrefix(prep[0], "Fill tank A") {
		t.Fatalf("first step = %s", prep[0])
	}
	// 20 ℃ 溶解度：硫酸镁 710 > 硝酸钾 316 > 磷酸二氢钾 226
	order := []string{catalog.MagnesiumSulfate, catalog.PotassiumNitrate, catalog.PotassiumPhosphate}
	for i, name := range order {
		if !strings.Contains(prep[i+1], name) {
			t.Errorf("step %d = %s, want %s", i+1, prep[i+1], name)
		}
	}

	tanks, err = d.Distribute([]model.FertilizerDose{dose(cat, catalog.CalciumNitrate, 500)}, []string{catalog.NitricAcid}, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	prep = tanks[1].Preparation
	if !strings.Contains(prep[1], catalog.CalciumNitrate) || !strings.Contains(prep[2], catalog.NitricAcid) {
		t.Fatalf("acid should follow fertilizers: %v", prep)
	}
}

func TestDefaults(t *testing.T) {
	d, cat := newTestDistributor()
	doses := []model.FertilizerDose{dose(cat, catalog.PotassiumNitrate, 50)}
	tanks, err := d.Distribute(doses, nil, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tanks) != 2 {
		t.Fatalf("%d tanks", len(tanks))
	}
	if tanks[0].Concentrations[catalog.PotassiumNitrate] != 5 {
		t.Fatalf("concentration = %v", tanks[0].Concentrations[catalog.PotassiumNitrate])
	}
	if tanks[0].Masses[catalog.PotassiumNitrate] != 5 {
		t.Fatalf("mass = %v", tanks[0].Masses[catalog.PotassiumNitrate])
	}

	// 罐数超过上限时按上限分罐
	for _, n := range []int{9, 1 << 20, 1 << 40} {
		tanks, err = d.Distribute(doses, []string{catalog.NitricAcid}, n, 100, 1000)
		if err != nil {
			t.Fatal(err)
		}
		if len(tanks) != defaultMaxTanks {
			t.Fatalf("tank_count %d: %d tanks", n, len(tanks))
		}
		if tankOf(tanks, catalog.NitricAcid) != defaultMaxTanks-1 {
			t.Fatalf("tank_count %d: acid in tank %d", n, tankOf(tanks, catalog.NitricAcid))
		}
	}
}

func TestMaxTanks(t *testing.T) {
	cat := catalog.New()
	opts := DefaultOptions()
	opts.MaxTanks = 5
	d := New(cat, compatibility.New(cat), opts)
	report, err := d.Plan(formulate(t, cat), nil, 1<<40, 100, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Tanks) != 5 {
		t.Fatalf("%d tanks", len(report.Tanks))
	}

	// 默认罐数大于上限时同样按上限处理
	d = New(cat, compatibility.New(cat), Options{TankCount: 12, MaxTanks: 6})
	tanks, err := d.Distribute(nil, nil, 0, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(tanks) != 6 {
		t.Fatalf("%d tanks", len(tanks))
	}
}

func TestPreparationTemperature(t *testing.T) {
	cat := catalog.New()
	doses := []model.FertilizerDose{
		dose(cat, catalog.PotassiumNitrate, 200),
		dose(cat, catalog.PotassiumPhosphate, 100),
	}
	// 0 ℃：磷酸二氢钾 142 > 硝酸钾 133；20 ℃：硝酸钾 316 > 磷酸二氢钾 226
	cases := []struct {
		temp  float64
		first string
	}{
		{0, catalog.PotassiumPhosphate},
		{20, catalog.PotassiumNitrate},
	}
	for _, c := range cases {
		opts := DefaultOptions()
		opts.Temperature = c.temp
		d := New(cat, compatibility.New(cat), opts)
		tanks, err := d.Distribute(doses, nil, 2, 100, 1000)
		if err != nil {
			t.Fatal(err)
		}
		if prep := tanks[0].Preparation; !strings.Contains(prep[1], c.first) {
			t.Errorf("%v ℃: first dissolved = %s, want %s", c.temp, prep[1], c.first)
		}
	}
}

// 五罐时微量元素并入氯化钙所在罐
func TestCalciumChlorideMicronutrients(t *testing.T) {
	d, cat := newTestDistributor()
	doses := []model.FertilizerDose{
		dose(cat, catalog.CalciumChloride, 300),
		dose(cat, catalog.ZincSulfate, 1),
		dose(cat, catalog.ManganeseSulfate, 2),
		dose(cat, catalog.CopperSulfate, 0.2),
	}
	tanks, err := d.Distribute(doses, nil, 5, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	i := tankOf(tanks, catalog.CalciumChloride)
	if i != tankOf(tanks, catalog.ZincSulfate) {
		t.Fatalf("calcium chloride in %d, zinc sulfate in %d", i, tankOf(tanks, catalog.ZincSulfate))
	}
	warnings := tanks[i].CompatibilityWarnings
	if len(warnings) != 3 {
		t.Fatalf("warnings = %+v", warnings)
	}
	for _, w := range warnings {
		if w.Level != model.Limited || w.Severity != model.SeverityCaution {
			t.Errorf("warning = %+v", w)
		}
	}
}

func TestDuplicateDoses(t *testing.T) {
	d, cat := newTestDistributor()
	doses := []model.FertilizerDose{
		dose(cat, catalog.PotassiumNitrate, 800),
		dose(cat, catalog.PotassiumNitrate, 800),
	}
	tanks, err := d.Distribute(doses, nil, 2, 100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(tanks[0].Fertilizers) != 1 || tanks[0].Concentrations[catalog.PotassiumNitrate] != 160 {
		t.Fatalf("tank = %+v", tanks[0])
	}
	if len(tanks[0].SolubilityWarnings) != 1 || tanks[0].SolubilityWarnings[0].Severity != model.SeverityHard {
		t.Fatalf("warnings = %+v", tanks[0].SolubilityWarnings)
	}
}

func TestDistributeErrors(t *testing.T) {
	d, _ := newTestDistributor()
	if _, err := d.Distribute(nil, []string{"Citric acid"}, 2, 100, 1000); !errors.Is(err, catalog.ErrUnknownAcid) {
		t.Fatalf("expected ErrUnknownAcid, got %v", err)
	}
	doses := []model.FertilizerDose{{Name: "Mystery salt", ConcentrationMgL: 10}}
	if _, err := d.Distribute(doses, nil, 2, 100, 1000); !errors.Is(err, catalog.ErrUnknownFertilizer) {
		t.Fatalf("expected ErrUnknownFertilizer, got %v", err)
	}
	// 只有名称时从参考数据中查找
	doses = []model.FertilizerDose{{Name: catalog.PotassiumNitrate, ConcentrationMgL: 10}}
	if _, err := d.Distribute(doses, nil, 2, 100, 1000); err != nil {
		t.Fatal(err)
	}
}

func TestPlan(t *testing.T) {
	d, cat := newTestDistributor()
	doses := formulate(t, cat)
	report, err := d.Plan(doses, []string{catalog.PhosphoricAcid}, 2, 100, 1000, 200000)
	if err != nil {
		t.Fatal(err)
	}
	if report.Fills != 2 {
		t.Fatalf("fills = %v", report.Fills)
	}

	var total float64
	for _, tank := range report.Tanks {
		total += tank.Cost
	}
	if math.Abs(report.TotalCost-total) > 1e-9 {
		t.Fatalf("total cost = %v, tanks = %v", report.TotalCost, total)
	}
	// 一罐母液稀释为 100 m³
	if math.Abs(report.CostPerM3-report.TotalCost/100) > 1e-9 {
		t.Fatalf("cost per m3 = %v, total = %v", report.CostPerM3, report.TotalCost)
	}

	if len(report.ShoppingList) != len(doses) {
		t.Fatalf("shopping list = %v", report.ShoppingList)
	}
	for i, item := range report.ShoppingList {
		if item.Fertilizer != doses[i].Name {
			t.Errorf("item %d = %s, want %s", i, item.Fertilizer, doses[i].Name)
		}
		want := doses[i].ConcentrationMgL * 200000 / 1e6
		if math.Abs(item.MassKg-want) > 1e-9 {
			t.Errorf("%s: %v kg, want %v", item.Fertilizer, item.MassKg, want)
		}
	}

	// 磷酸与硝酸钙同罐
	if len(report.CriticalWarnings) == 0 {
		t.Fatal("expected critical warnings")
	}
	for _, w := range report.CriticalWarnings {
		if !w.IsCritical() {
			t.Errorf("non-critical warning in report: %+v", w)
		}
	}
}

func TestPlanDilutedVolumeDefault(t *testing.T) {
	cat := catalog.New()
	d := New(cat, compatibility.New(cat), Options{})
	report, err := d.Plan([]model.FertilizerDose{dose(cat, catalog.PotassiumNitrate, 50)}, nil, 2, 100, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if report.DilutedVolume != 100000 || report.Fills != 1 {
		t.Fatalf("diluted = %v, fills = %v", report.DilutedVolume, report.Fills)
	}

	d = New(cat, compatibility.New(cat), Options{DilutedVolume: 50000})
	report, err = d.Plan([]model.FertilizerDose{dose(cat, catalog.PotassiumNitrate, 50)}, nil, 2, 100, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if report.DilutedVolume != 50000 || report.Fills != 0.5 {
		t.Fatalf("diluted = %v, fills = %v", report.DilutedVolume, report.Fills)
	}
}

func TestPlanIdempotent(t *testing.T) {
	d, cat := newTestDistributor()
	doses := formulate(t, cat)
	acids := []string{catalog.NitricAcid, catalog.SulfuricAcid}
	a, err := d.Plan(doses, acids, 4, 150, 800, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Plan(doses, acids, 4, 150, 800, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("plan is not deterministic")
	}
}

func BenchmarkPlan(b *testing.B) {
	cat := catalog.New()
	d := New(cat, compatibility.New(cat), Options{})
	e, _ := calculator.NewEngine(cat, calculator.DefaultConfig())
	doses, _ := e.Formulate(model.NutrientTarget{catalog.N: 150, catalog.P: 45, catalog.K: 260, catalog.Ca: 172, catalog.Mg: 50, catalog.S: 108}, nil)
	for i := 0; i < b.N; i++ {
		_, _ = d.Plan(doses, []string{catalog.NitricAcid}, 3, 100, 1000, 0)
	}
}
