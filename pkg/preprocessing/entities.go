package preprocessing

import (
	"regexp"
	"strings"
)

// Entity labels recognized by the extractor.
const (
	LabelDiagnosis  = "DIAGNOSIS"
	LabelProcedure  = "PROCEDURE"
	LabelMedication = "MEDICATION"
	LabelAnatomy    = "ANATOMY"
	LabelSeverity   = "SEVERITY"
	LabelDuration   = "DURATION"
)

type entityRule struct {
	label string
	re    *regexp.Regexp
}

var entityRules = compileEntityRules()

func compileEntityRules() []entityRule {
	patterns := map[string][]string{
		LabelDiagnosis: {
			`(?i)\b(?:diagnosed with|diagnosis of|assessment of|impression of|assessment:|impression:|diagnosis:|dx:)\s+([\w\s\-\,]+)`,
			`(?i)\b(?:suffers from|suffering from|known case of|has a history of)\s+([\w\s\-\,]+)`,
			`(?i)\b(?:presented with|presents with|complains of|complained of|reports|reported)\s+([\w\s\-\,]+)`,
		},
		LabelProcedure: {
			`(?i)\b(?:underwent|undergoing|scheduled for|performed|will undergo|had|has had)\s+([\w\s\-\,]+(?:surgery|procedure|operation|repair|replacement|resection|biopsy|implantation|removal|excision|amputation|transplantation|bypass|angioplasty|catheterization|endoscopy|colonoscopy|bronchoscopy|arthroscopy))`,
			`(?i)\b(?:status post|s/p)\s+([\w\s\-\,]+(?:surgery|procedure|operation|repair|replacement|resection|biopsy|implantation|removal|excision|amputation|transplantation|bypass|angioplasty|catheterization|endoscopy|colonoscopy|bronchoscopy|arthroscopy))`,
		},
		LabelMedication: {
			`(?i)\b(?:prescribed|taking|started on|continues on|maintained on|given|administered|received)\s+([\w\s\-\,]+(?:mg|mcg|g|ml|units|tabs|capsules|pills|patch|injection|infusion|solution|suspension|syrup|cream|ointment|gel|spray|inhaler|nebulizer))`,
			`(?i)\b(?:medication:|medications:|meds:|current medications:|med list:|medication list:)\s+([\w\s\-\,]+)`,
		},
		LabelAnatomy: {
			`(?i)\b(?:in the|of the|at the|on the|involving the|affecting the)\s+([\w\s\-\,]+(?:heart|lung|liver|kidney|brain|spine|spinal cord|stomach|intestine|colon|rectum|bladder|uterus|prostate|breast|skin|muscle|bone|joint|artery|vein|nerve|eye|ear|nose|throat|esophagus|trachea|bronchus|pancreas|gallbladder|thyroid|aorta|carotid|femoral|ventricle|atrium))`,
		},
		LabelSeverity: {
			`(?i)\b(mild|moderate|severe|critical|extreme|minimal|significant|marked|pronounced|substantial|considerable|extensive|profound|slight|minor|major)\s+[\w\s\-\,]+`,
		},
		LabelDuration: {
			`(?i)\b(?:for|over|during|throughout|within|after|before|since|lasting|persisting)\s+([\w\s\-\,]+(?:day|days|week|weeks|month|months|year|years|hour|hours|minute|minutes))`,
			`(?i)\b(acute|chronic|subacute|recurrent|persistent|intermittent|transient|episodic|paroxysmal|constant|continuous|ongoing|longstanding)\s+[\w\s\-\,]+`,
		},
	}

	// fixed label order keeps output deterministic
	order := []string{LabelDiagnosis, LabelProcedure, LabelMedication, LabelAnatomy, LabelSeverity, LabelDuration}

	var rules []entityRule
	for _, label := range order {
		for _, p := range patterns[label] {
			rules = append(rules, entityRule{label: label, re: regexp.MustCompile(p)})
		}
	}
	return rules
}

// ExtractEntities scans sentence-segmented text for medical entities matching
// the requested labels. A nil or empty label list extracts every label.
func ExtractEntities(text string, labels []string) map[string][]string {
	wanted := make(map[string]struct{})
	if len(labels) == 0 {
		for _, r := range entityRules {
			wanted[r.label] = struct{}{}
		}
	} else {
		for _, l := range labels {
			wanted[strings.ToUpper(strings.TrimSpace(l))] = struct{}{}
		}
	}

	entities := make(map[string][]string)
	for label := range wanted {
		entities[label] = []string{}
	}

	for _, sentence := range SegmentSentences(text) {
		for _, rule := range entityRules {
			if _, ok := wanted[rule.label]; !ok {
				continue
			}
			for _, match := range rule.re.FindAllStringSubmatch(sentence, -1) {
				captured := match[0]
				if len(match) > 1 && match[1] != "" {
					captured = match[1]
				}
				entity := strings.TrimSpace(captured)
				if entity != "" && !contains(entities[rule.label], entity) {
					entities[rule.label] = append(entities[rule.label], entity)
				}
			}
		}
	}

	return entities
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "without": {}, "from": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "by": {}, "for": {}, "of": {}, "a": {}, "an": {},
}

// FilterEntities drops entities shorter than minLength and bare stopwords.
func FilterEntities(entities map[string][]string, minLength int) map[string][]string {
	filtered := make(map[string][]string, len(entities))
	for label, list := range entities {
		kept := []string{}
		for _, entity := range list {
			if len(entity) < minLength {
				continue
			}
			if _, stop := stopwords[strings.ToLower(entity)]; stop {
				continue
			}
			kept = append(kept, entity)
		}
		filtered[label] = kept
	}
	return filtered
}

var (
	trailingPunct   = regexp.MustCompile(`[.,;:!?]+$`)
	leadingArticles = regexp.MustCompile(`^(a|an|the)\s+`)
)

// NormalizeEntities lowercases entities, strips trailing punctuation and
// leading articles, and collapses duplicates.
func NormalizeEntities(entities map[string][]string) map[string][]string {
	normalized := make(map[string][]string, len(entities))
	for label, list := range entities {
		out := []string{}
		for _, entity := range list {
			e := strings.ToLower(entity)
			e = trailingPunct.ReplaceAllString(e, "")
			e = leadingArticles.ReplaceAllString(e, "")
			if e != "" && !contains(out, e) {
				out = append(out, e)
			}
		}
		normalized[label] = out
	}
	return normalized
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
