package catalog

import "hydro/model"

// 元素参考表
// 阴离子以其在营养液中的形态计价：N 按 NO3-，P 按 H2PO4-，S 按 SO4 2-
// B、Mo 浓度极低，按一价 / 二价阴离子处理
var elements = []model.Element{
	{Symbol: N, AtomicWeight: 14.007, Valence: 1, Cation: false, Ion: "NO3"},
	{Symbol: P, AtomicWeight: 30.974, Valence: 1, Cation: false, Ion: "H2PO4"},
	{Symbol: K, AtomicWeight: 39.098, Valence: 1, Cation: true, Ion: "K"},
	{Symbol: Ca, AtomicWeight: 40.078, Valence: 2, Cation: true, Ion: "Ca"},
	{Symbol: Mg, AtomicWeight: 24.305, Valence: 2, Cation: true, Ion: "Mg"},
	{Symbol: S, AtomicWeight: 32.06, Valence: 2, Cation: false, Ion: "SO4"},
	{Symbol: Fe, AtomicWeight: 55.845, Valence: 2, Cation: true, Ion: "Fe"},
	{Symbol: Mn, AtomicWeight: 54.938, Valence: 2, Cation: true, Ion: "Mn"},
	{Symbol: Zn, AtomicWeight: 65.38, Valence: 2, Cation: true, Ion: "Zn"},
	{Symbol: Cu, AtomicWeight: 63.546, Valence: 2, Cation: true, Ion: "Cu"},
	{Symbol: B, AtomicWeight: 10.81, Valence: 1, Cation: false, Ion: "H2BO3"},
	{Symbol: Mo, AtomicWeight: 95.95, Valence: 2, Cation: false, Ion: "MoO4"},
	{Symbol: Na, AtomicWeight: 22.99, Valence: 1, Cation: true, Ion: "Na"},
	{Symbol: Cl, AtomicWeight: 35.453, Valence: 1, Cation: false, Ion: "Cl"},
	{Symbol: HCO3, AtomicWeight: 61.017, Valence: 1, Cation: false, Ion: "HCO3"},
}

// 肥料参考表
// 溶解度、上限为商品级肥料的经验值，g/L
var fertilizers = []model.Fertilizer{
	{
		Name: PotassiumPhosphate, Formula: "KH2PO4", Family: model.FamilyPhosphate,
		MolarMass: 136.086, Purity: 0.98,
		Elements:         map[string]float64{P: 30.974, K: 39.098},
		Solubility:       model.Solubility{At0: 142, At20: 226, At40: 339},
		SafeLimit:        140,
		RecommendedLimit: 100,
		CostPerKg:        2.10,
	},
	{
		Name: CalciumNitrate, Formula: "Ca(NO3)2·4H2O", Family: model.FamilyCalcium,
		MolarMass: 236.15, Purity: 0.95,
		Elements:         map[string]float64{Ca: 40.078, N: 2 * 14.007},
		Solubility:       model.Solubility{At0: 1020, At20: 1290, At40: 1960},
		SafeLimit:        600,
		RecommendedLimit: 400,
		CostPerKg:        0.85,
	},
	{
		Name: MagnesiumSulfate, Formula: "MgSO4·7H2O", Family: model.FamilySulfate,
		MolarMass: 246.47, Purity: 0.98,
		Elements:         map[string]float64{Mg: 24.305, S: 32.06},
		Solubility:       model.Solubility{At0: 520, At20: 710, At40: 910},
		SafeLimit:        400,
		RecommendedLimit: 300,
		CostPerKg:        0.45,
	},
	{
		Name: PotassiumNitrate, Formula: "KNO3", Family: model.FamilyNitrate,
		MolarMass: 101.103, Purity: 0.99,
		Elements:         map[string]float64{K: 39.098, N: 14.007},
		Solubility:       model.Solubility{At0: 133, At20: 316, At40: 639},
		SafeLimit:        130,
		RecommendedLimit: 100,
		CostPerKg:        1.20,
	},
	{
		Name: PotassiumSulfate, Formula: "K2SO4", Family: model.FamilySulfate,
		MolarMass: 174.259, Purity: 0.98,
		Elements:         map[string]float64{K: 2 * 39.098, S: 32.06},
		Solubility:       model.Solubility{At0: 74, At20: 111, At40: 148},
		SafeLimit:        70,
		RecommendedLimit: 50,
		CostPerKg:        1.05,
	},
	{
		Name: CalciumChloride, Formula: "CaCl2·2H2O", Family: model.FamilyCalcium,
		MolarMass: 147.01, Purity: 0.98,
		Elements:         map[string]float64{Ca: 40.078, Cl: 2 * 35.453},
		Solubility:       model.Solubility{At0: 595, At20: 745, At40: 1153},
		SafeLimit:        500,
		RecommendedLimit: 350,
		CostPerKg:        0.60,
	},
	{
		Name: PotassiumChloride, Formula: "KCl", Family: model.FamilyChloride,
		MolarMass: 74.551, Purity: 0.99,
		Elements:         map[string]float64{K: 39.098, Cl: 35.453},
		Solubility:       model.Solubility{At0: 280, At20: 340, At40: 400},
		SafeLimit:        250,
		RecommendedLimit: 180,
		CostPerKg:        0.55,
	},
	{
		Name: IronChelate, Formula: "NaFeEDTA·3H2O", Family: model.FamilyMicronutrient, Chelated: true,
		MolarMass: 421.09, Purity: 0.98,
		Elements:         map[string]float64{Fe: 55.845, Na: 22.99},
		Solubility:       model.Solubility{At0: 90, At20: 100, At40: 110},
		SafeLimit:        80,
		RecommendedLimit: 50,
		CostPerKg:        6.50,
	},
	{
		Name: ManganeseSulfate, Formula: "MnSO4·H2O", Family: model.FamilyMicronutrient,
		MolarMass: 169.02, Purity: 0.98,
		Elements:         map[string]float64{Mn: 54.938, S: 32.06},
		Solubility:       model.Solubility{At0: 520, At20: 620, At40: 680},
		SafeLimit:        400,
		RecommendedLimit: 250,
		CostPerKg:        2.40,
	},
	{
		Name: ZincSulfate, Formula: "ZnSO4·7H2O", Family: model.FamilyMicronutrient,
		MolarMass: 287.56, Purity: 0.98,
		Elements:         map[string]float64{Zn: 65.38, S: 32.06},
		Solubility:       model.Solubility{At0: 420, At20: 540, At40: 700},
		SafeLimit:        400,
		RecommendedLimit: 250,
		CostPerKg:        2.80,
	},
	{
		Name: CopperSulfate, Formula: "CuSO4·5H2O", Family: model.FamilyMicronutrient,
		MolarMass: 249.69, Purity: 0.98,
		Elements:         map[string]float64{Cu: 63.546, S: 32.06},
		Solubility:       model.Solubility{At0: 143, At20: 203, At40: 287},
		SafeLimit:        140,
		RecommendedLimit: 100,
		CostPerKg:        3.90,
	},
	{
		Name: BoricAcid, Formula: "H3BO3", Family: model.FamilyMicronutrient,
		MolarMass: 61.833, Purity: 0.99,
		Elements:         map[string]float64{B: 10.81},
		Solubility:       model.Solubility{At0: 27, At20: 50, At40: 87},
		SafeLimit:        25,
		RecommendedLimit: 20,
		CostPerKg:        2.20,
	},
	{
		Name: SodiumMolybdate, Formula: "Na2MoO4·2H2O", Family: model.FamilyMicronutrient,
		MolarMass: 241.95, Purity: 0.99,
		Elements:         map[string]float64{Mo: 95.95, Na: 2 * 22.99},
		Solubility:       model.Solubility{At0: 560, At20: 650, At40: 700},
		SafeLimit:        400,
		RecommendedLimit: 250,
		CostPerKg:        28.00,
	},
}
