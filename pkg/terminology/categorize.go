package terminology

import (
	"regexp"
	"strconv"
)

var (
	icd10Pattern = regexp.MustCompile(`^[A-Z]\d{2}(\.\d+)?$`)
	cptPattern   = regexp.MustCompile(`^\d{5}$`)
)

// IsValidICD10 reports whether code matches the ICD-10 format: a letter,
// two digits, and an optional decimal extension.
func IsValidICD10(code string) bool {
	return icd10Pattern.MatchString(code)
}

// IsValidCPT reports whether code matches the CPT format: five digits.
func IsValidCPT(code string) bool {
	return cptPattern.MatchString(code)
}

var icd10Chapters = map[byte]string{
	'A': "Certain infectious and parasitic diseases",
	'B': "Certain infectious and parasitic diseases",
	'C': "Neoplasms",
	'D': "Neoplasms / Diseases of the blood and blood-forming organs",
	'E': "Endocrine, nutritional and metabolic diseases",
	'F': "Mental and behavioral disorders",
	'G': "Diseases of the nervous system",
	'H': "Diseases of the eye and adnexa / Diseases of the ear and mastoid process",
	'I': "Diseases of the circulatory system",
	'J': "Diseases of the respiratory system",
	'K': "Diseases of the digestive system",
	'L': "Diseases of the skin and subcutaneous tissue",
	'M': "Diseases of the musculoskeletal system and connective tissue",
	'N': "Diseases of the genitourinary system",
	'O': "Pregnancy, childbirth and the puerperium",
	'P': "Certain conditions originating in the perinatal period",
	'Q': "Congenital malformations, deformations and chromosomal abnormalities",
	'R': "Symptoms, signs and abnormal clinical and laboratory findings",
	'S': "Injury, poisoning and certain other consequences of external causes",
	'T': "Injury, poisoning and certain other consequences of external causes",
	'V': "External causes of morbidity",
	'W': "External causes of morbidity",
	'X': "External causes of morbidity",
	'Y': "External causes of morbidity",
	'Z': "Factors influencing health status and contact with health services",
}

// CategorizeICD10 maps an ICD-10 code to its chapter.
func CategorizeICD10(code string) string {
	if !IsValidICD10(code) {
		return "Invalid ICD-10 code"
	}
	if chapter, ok := icd10Chapters[code[0]]; ok {
		return chapter
	}
	return "Unknown chapter"
}

// CategorizeCPT maps a CPT code to its section.
func CategorizeCPT(code string) string {
	if !IsValidCPT(code) {
		return "Invalid CPT code"
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return "Invalid CPT code"
	}
	switch {
	case n <= 9999:
		return "Evaluation and Management"
	case n <= 19999:
		return "Anesthesia"
	case n <= 29999:
		return "Surgery (Integumentary System)"
	case n <= 39999:
		return "Surgery (Respiratory, Cardiovascular, Hemic/Lymphatic Systems)"
	case n <= 49999:
		return "Surgery (Digestive System)"
	case n <= 59999:
		return "Surgery (Urinary, Male/Female Genital, Maternity Care Systems)"
	case n <= 69999:
		return "Surgery (Endocrine, Nervous, Eye, Auditory Systems)"
	case n <= 79999:
		return "Radiology"
	case n <= 89999:
		return "Pathology and Laboratory"
	default:
		return "Medicine"
	}
}
