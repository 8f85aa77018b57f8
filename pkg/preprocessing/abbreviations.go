package preprocessing

import (
	"regexp"
	"sort"
	"strings"
)

// medicalAbbreviations maps common clinical shorthand to its expanded form.
// The source dictionary carried a handful of ambiguous entries (pt, pe, rt);
// those resolve to the expansion most common in admission notes.
var medicalAbbreviations = map[string]string{
	"pt":     "patient",
	"pts":    "patients",
	"dx":     "diagnosis",
	"hx":     "history",
	"tx":     "treatment",
	"sx":     "symptoms",
	"fx":     "fracture",
	"htn":    "hypertension",
	"dm":     "diabetes mellitus",
	"t2dm":   "type 2 diabetes mellitus",
	"chf":    "congestive heart failure",
	"cad":    "coronary artery disease",
	"copd":   "chronic obstructive pulmonary disease",
	"uti":    "urinary tract infection",
	"mi":     "myocardial infarction",
	"cva":    "cerebrovascular accident",
	"tia":    "transient ischemic attack",
	"gerd":   "gastroesophageal reflux disease",
	"bph":    "benign prostatic hyperplasia",
	"ckd":    "chronic kidney disease",
	"esrd":   "end-stage renal disease",
	"afib":   "atrial fibrillation",
	"hld":    "hyperlipidemia",
	"osa":    "obstructive sleep apnea",
	"ra":     "rheumatoid arthritis",
	"sle":    "systemic lupus erythematosus",
	"gib":    "gastrointestinal bleeding",
	"uc":     "ulcerative colitis",
	"ibs":    "irritable bowel syndrome",
	"dvt":    "deep vein thrombosis",
	"pe":     "pulmonary embolism",
	"ards":   "acute respiratory distress syndrome",
	"aki":    "acute kidney injury",
	"hf":     "heart failure",
	"sob":    "shortness of breath",
	"cp":     "chest pain",
	"ha":     "headache",
	"n/v":    "nausea and vomiting",
	"c/o":    "complains of",
	"s/p":    "status post",
	"h/o":    "history of",
	"f/u":    "follow up",
	"yo":     "year old",
	"y/o":    "year old",
	"bp":     "blood pressure",
	"hr":     "heart rate",
	"rr":     "respiratory rate",
	"o2":     "oxygen",
	"spo2":   "oxygen saturation",
	"wbc":    "white blood cell count",
	"rbc":    "red blood cell count",
	"hgb":    "hemoglobin",
	"hct":    "hematocrit",
	"plt":    "platelet count",
	"bun":    "blood urea nitrogen",
	"cr":     "creatinine",
	"gfr":    "glomerular filtration rate",
	"ast":    "aspartate aminotransferase",
	"alt":    "alanine aminotransferase",
	"alp":    "alkaline phosphatase",
	"tbili":  "total bilirubin",
	"a1c":    "hemoglobin a1c",
	"hba1c":  "hemoglobin a1c",
	"tsh":    "thyroid stimulating hormone",
	"ua":     "urinalysis",
	"cxr":    "chest x-ray",
	"ct":     "computed tomography",
	"mri":    "magnetic resonance imaging",
	"us":     "ultrasound",
	"ecg":    "electrocardiogram",
	"ekg":    "electrocardiogram",
	"echo":   "echocardiogram",
	"endo":   "endoscopy",
	"colo":   "colonoscopy",
	"egd":    "esophagogastroduodenoscopy",
	"cabg":   "coronary artery bypass graft",
	"ptca":   "percutaneous transluminal coronary angioplasty",
	"pci":    "percutaneous coronary intervention",
	"tka":    "total knee arthroplasty",
	"tha":    "total hip arthroplasty",
	"orif":   "open reduction internal fixation",
	"lap":    "laparoscopic",
	"appy":   "appendectomy",
	"po":     "by mouth",
	"pr":     "per rectum",
	"iv":     "intravenous",
	"im":     "intramuscular",
	"sc":     "subcutaneous",
	"sl":     "sublingual",
	"bid":    "twice daily",
	"tid":    "three times daily",
	"qid":    "four times daily",
	"qd":     "once daily",
	"qod":    "every other day",
	"prn":    "as needed",
	"q4h":    "every 4 hours",
	"q6h":    "every 6 hours",
	"q8h":    "every 8 hours",
	"q12h":   "every 12 hours",
	"qhs":    "at bedtime",
	"ac":     "before meals",
	"pc":     "after meals",
	"w/":     "with",
	"w/o":    "without",
	"b/l":    "bilateral",
	"r/o":    "rule out",
	"d/c":    "discharge or discontinue",
	"f/c":    "fever and chills",
	"n/a":    "not applicable",
	"neg":    "negative",
	"pos":    "positive",
	"wt":     "weight",
	"ht":     "height",
	"bmi":    "body mass index",
	"cc":     "chief complaint",
	"pmh":    "past medical history",
	"psh":    "past surgical history",
	"fh":     "family history",
	"sh":     "social history",
	"meds":   "medications",
	"ros":    "review of systems",
	"vs":     "vital signs",
	"labs":   "laboratory results",
	"a/p":    "assessment and plan",
	"icu":    "intensive care unit",
	"ccu":    "cardiac care unit",
	"ed":     "emergency department",
	"pacu":   "post-anesthesia care unit",
	"snf":    "skilled nursing facility",
	"ltc":    "long-term care",
	"rehab":  "rehabilitation",
	"ot":     "occupational therapy",
	"st":     "speech therapy",
	"rt":     "respiratory therapy",
	"sw":     "social work",
	"md":     "medical doctor",
	"np":     "nurse practitioner",
	"pa":     "physician assistant",
	"rn":     "registered nurse",
	"lpn":    "licensed practical nurse",
	"cna":    "certified nursing assistant",
	"doa":    "dead on arrival",
	"dnr":    "do not resuscitate",
	"cpr":    "cardiopulmonary resuscitation",
	"adl":    "activities of daily living",
	"iadl":   "instrumental activities of daily living",
	"loc":    "level of consciousness",
	"gcs":    "glasgow coma scale",
	"mmse":   "mini-mental state examination",
	"moca":   "montreal cognitive assessment",
	"bmp":    "basic metabolic panel",
	"cmp":    "comprehensive metabolic panel",
	"cbc":    "complete blood count",
	"lft":    "liver function tests",
	"lfts":   "liver function tests",
	"abg":    "arterial blood gas",
	"pft":    "pulmonary function test",
	"c&s":    "culture and sensitivity",
	"mrsa":   "methicillin-resistant staphylococcus aureus",
	"vre":    "vancomycin-resistant enterococcus",
	"cdiff":  "clostridium difficile",
	"hiv":    "human immunodeficiency virus",
	"hcv":    "hepatitis c virus",
	"hbv":    "hepatitis b virus",
	"tb":     "tuberculosis",
	"ca":     "cancer",
	"mets":   "metastasis",
	"chemo":  "chemotherapy",
	"nsaid":  "non-steroidal anti-inflammatory drug",
	"ppi":    "proton pump inhibitor",
	"acei":   "angiotensin-converting enzyme inhibitor",
	"arb":    "angiotensin receptor blocker",
	"ccb":    "calcium channel blocker",
	"bb":     "beta blocker",
	"abx":    "antibiotics",
	"vanco":  "vancomycin",
	"levo":   "levofloxacin",
	"cipro":  "ciprofloxacin",
	"amox":   "amoxicillin",
	"pcn":    "penicillin",
	"asa":    "aspirin",
	"apap":   "acetaminophen",
	"lmwh":   "low molecular weight heparin",
	"doac":   "direct oral anticoagulant",
	"noac":   "novel oral anticoagulant",
	"statin": "HMG-CoA reductase inhibitor",
	"ssri":   "selective serotonin reuptake inhibitor",
	"snri":   "serotonin-norepinephrine reuptake inhibitor",
	"tca":    "tricyclic antidepressant",
	"maoi":   "monoamine oxidase inhibitor",
	"benzo":  "benzodiazepine",

	// brand -> generic
	"coumadin":  "warfarin",
	"lovenox":   "enoxaparin",
	"plavix":    "clopidogrel",
	"brilinta":  "ticagrelor",
	"effient":   "prasugrel",
	"eliquis":   "apixaban",
	"xarelto":   "rivaroxaban",
	"pradaxa":   "dabigatran",
	"lipitor":   "atorvastatin",
	"crestor":   "rosuvastatin",
	"zocor":     "simvastatin",
	"pravachol": "pravastatin",
	"zetia":     "ezetimibe",
	"tricor":    "fenofibrate",
	"lopid":     "gemfibrozil",
	"niaspan":   "niacin",
	"lasix":     "furosemide",
	"bumex":     "bumetanide",
	"demadex":   "torsemide",
	"zaroxolyn": "metolazone",
	"aldactone": "spironolactone",
	"hctz":      "hydrochlorothiazide",
	"diamox":    "acetazolamide",
	"lopressor": "metoprolol",
	"toprol":    "metoprolol",
	"coreg":     "carvedilol",
	"tenormin":  "atenolol",
	"norvasc":   "amlodipine",
	"cardizem":  "diltiazem",
	"prinivil":  "lisinopril",
	"zestril":   "lisinopril",
	"vasotec":   "enalapril",
	"cozaar":    "losartan",
	"diovan":    "valsartan",
	"imdur":     "isosorbide mononitrate",
	"isordil":   "isosorbide dinitrate",
	"nitro":     "nitroglycerin",
	"nitrostat": "nitroglycerin",
	"glucophage": "metformin",
	"januvia":    "sitagliptin",
	"jardiance":  "empagliflozin",
	"ozempic":    "semaglutide",
	"trulicity":  "dulaglutide",
	"lantus":     "insulin glargine",
	"humalog":    "insulin lispro",
	"novolog":    "insulin aspart",
	"levemir":    "insulin detemir",
	"tresiba":    "insulin degludec",
	"synthroid":  "levothyroxine",
	"tylenol":    "acetaminophen",
	"motrin":     "ibuprofen",
	"advil":      "ibuprofen",
	"aleve":      "naproxen",
	"augmentin":  "amoxicillin-clavulanate",
	"activase":   "alteplase",
	"tnkase":     "tenecteplase",
	"integrilin": "eptifibatide",
	"aggrastat":  "tirofiban",
	"reopro":     "abciximab",
	"angiomax":   "bivalirudin",
	"arixtra":    "fondaparinux",
	"repatha":    "evolocumab",
	"praluent":   "alirocumab",
	"vascepa":    "icosapent ethyl",
	"lovaza":     "omega-3-acid ethyl esters",
}

// abbreviationPattern is a single whole-word alternation over every known
// abbreviation, longest first so multi-character forms like "t2dm" win over
// their prefixes.
var abbreviationPattern = buildAbbreviationPattern()

func buildAbbreviationPattern() *regexp.Regexp {
	keys := make([]string, 0, len(medicalAbbreviations))
	for abbr := range medicalAbbreviations {
		keys = append(keys, abbr)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	escaped := make([]string, len(keys))
	for i, k := range keys {
		escaped[i] = regexp.QuoteMeta(k)
	}

	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}

// ExpandAbbreviations replaces whole-word medical abbreviations with their
// expanded forms, case-insensitively.
func ExpandAbbreviations(text string) string {
	return abbreviationPattern.ReplaceAllStringFunc(text, func(match string) string {
		if expansion, ok := medicalAbbreviations[strings.ToLower(match)]; ok {
			return expansion
		}
		return match
	})
}

// AbbreviationCount reports the size of the abbreviation table.
func AbbreviationCount() int {
	return len(medicalAbbreviations)
}
