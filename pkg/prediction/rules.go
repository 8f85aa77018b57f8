package prediction

import "github.com/PaulCertified/medical-code-prediction/pkg/common/models"

// rule maps a trigger condition to a billing code with a confidence interval.
// A rule fires when any trigger term is present in the key-term set or any
// trigger substring is present in the lowercased raw text; with requireBoth
// set, a term hit and a substring hit are both needed. Rules are independent
// and non-exclusive: every satisfied rule fires.
type rule struct {
	code        string
	codeType    string
	defaultDesc string
	terms       []string
	substrings  []string
	requireBoth bool
	lo, hi      float64
}

// icd10Rules is the canonical diagnosis rule table.
var icd10Rules = []rule{
	{
		code: "I21.4", codeType: models.CodeTypeICD10,
		defaultDesc: "Non-ST elevation myocardial infarction",
		terms:       []string{"acute coronary syndrome", "acs", "nstemi", "non-st elevation myocardial infarction"},
		lo:          0.85, hi: 0.95,
	},
	{
		code: "I21.3", codeType: models.CodeTypeICD10,
		defaultDesc: "ST elevation myocardial infarction of unspecified site",
		terms:       []string{"stemi", "st elevation myocardial infarction"},
		lo:          0.85, hi: 0.95,
	},
	{
		code: "I10", codeType: models.CodeTypeICD10,
		defaultDesc: "Essential (primary) hypertension",
		terms:       []string{"hypertension", "htn", "high blood pressure"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "E11.9", codeType: models.CodeTypeICD10,
		defaultDesc: "Type 2 diabetes mellitus without complications",
		terms:       []string{"diabetes", "diabetes mellitus", "type 2 diabetes", "t2dm"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "N18.9", codeType: models.CodeTypeICD10,
		defaultDesc: "Chronic kidney disease, unspecified",
		terms:       []string{"chronic kidney disease", "ckd"},
		lo:          0.75, hi: 0.85,
	},
	{
		// stage qualifier fires in addition to N18.9, never instead
		code: "N18.2", codeType: models.CodeTypeICD10,
		defaultDesc: "Chronic kidney disease, stage 2 (mild)",
		terms:       []string{"chronic kidney disease", "ckd"},
		substrings:  []string{"stage 2"},
		requireBoth: true,
		lo:          0.80, hi: 0.90,
	},
	{
		code: "I50.9", codeType: models.CodeTypeICD10,
		defaultDesc: "Heart failure, unspecified",
		terms:       []string{"heart failure", "hf", "chf"},
		lo:          0.75, hi: 0.85,
	},
	{
		code: "K21.9", codeType: models.CodeTypeICD10,
		defaultDesc: "Gastro-esophageal reflux disease without esophagitis",
		terms:       []string{"gerd", "gastroesophageal reflux disease"},
		lo:          0.70, hi: 0.80,
	},
	{
		code: "E78.5", codeType: models.CodeTypeICD10,
		defaultDesc: "Hyperlipidemia, unspecified",
		terms:       []string{"hyperlipidemia", "high cholesterol", "lipid"},
		lo:          0.75, hi: 0.85,
	},
	{
		code: "R07.9", codeType: models.CodeTypeICD10,
		defaultDesc: "Chest pain, unspecified",
		terms:       []string{"chest pain"},
		lo:          0.70, hi: 0.80,
	},
	{
		code: "R06.02", codeType: models.CodeTypeICD10,
		defaultDesc: "Shortness of breath",
		terms:       []string{"shortness of breath", "sob", "dyspnea"},
		lo:          0.70, hi: 0.80,
	},
}

// cptRules is the canonical procedure rule table.
var cptRules = []rule{
	{
		code: "93000", codeType: models.CodeTypeCPT,
		defaultDesc: "Electrocardiogram complete",
		terms:       []string{"electrocardiogram", "ecg", "ekg"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "93306", codeType: models.CodeTypeCPT,
		defaultDesc: "Echocardiography complete with spectral and color flow Doppler",
		terms:       []string{"echocardiogram", "echo"},
		lo:          0.75, hi: 0.85,
	},
	{
		code: "93454", codeType: models.CodeTypeCPT,
		defaultDesc: "Coronary angiography",
		terms:       []string{"cardiac catheterization", "cath", "coronary angiography", "angiogram"},
		lo:          0.85, hi: 0.95,
	},
	{
		code: "71046", codeType: models.CodeTypeCPT,
		defaultDesc: "Chest X-ray 2 views",
		terms:       []string{"chest x-ray", "cxr"},
		lo:          0.75, hi: 0.85,
	},
	{
		code: "80053", codeType: models.CodeTypeCPT,
		defaultDesc: "Comprehensive metabolic panel",
		terms:       []string{"comprehensive metabolic panel", "cmp"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "80048", codeType: models.CodeTypeCPT,
		defaultDesc: "Basic metabolic panel",
		terms:       []string{"basic metabolic panel", "bmp"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "80061", codeType: models.CodeTypeCPT,
		defaultDesc: "Lipid panel",
		terms:       []string{"lipid panel", "cholesterol"},
		lo:          0.75, hi: 0.85,
	},
	{
		code: "85025", codeType: models.CodeTypeCPT,
		defaultDesc: "Complete CBC with auto diff WBC",
		terms:       []string{"complete blood count", "cbc"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "84484", codeType: models.CodeTypeCPT,
		defaultDesc: "Troponin quantitative",
		terms:       []string{"troponin", "cardiac enzymes"},
		lo:          0.80, hi: 0.90,
	},
	{
		code: "99223", codeType: models.CodeTypeCPT,
		defaultDesc: "Initial hospital care per day level 3",
		substrings:  []string{"admit", "admission"},
		lo:          0.70, hi: 0.80,
	},
	{
		code: "99291", codeType: models.CodeTypeCPT,
		defaultDesc: "Critical care first hour",
		terms:       []string{"ccu", "cardiac care unit"},
		substrings:  []string{"critical care"},
		lo:          0.75, hi: 0.85,
	},
	{
		code: "96365", codeType: models.CodeTypeCPT,
		defaultDesc: "IV infusion therapy initial up to 1 hour",
		terms:       []string{"iv", "intravenous"},
		lo:          0.70, hi: 0.80,
	},
}

// fires evaluates the rule's trigger against the key-term set and the
// lowercased raw text.
func (r rule) fires(keyTerms KeyTermSet, lowerText string) bool {
	termHit := len(r.terms) > 0 && keyTerms.HasAny(r.terms...)
	subHit := false
	for _, s := range r.substrings {
		if containsSubstring(lowerText, s) {
			subHit = true
			break
		}
	}

	if r.requireBoth {
		return termHit && subHit
	}
	return termHit || subHit
}
