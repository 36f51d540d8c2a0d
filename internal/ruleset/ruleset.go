// Package ruleset carries the versioned consolidation configuration: the
// absolute-override priority list, the ordered pairwise precedence rules and
// the display-name tables for both category layers. The rule order is a
// compatibility contract with existing exports and must not be "corrected"
// into a symmetric table.
package ruleset

// Level-1 internal category tokens.
const (
	Construction      = "construction"
	StandardEquipment = "standard_equipment"
	ProcessEquipment  = "process_equipment"
	DesignAndNRE      = "design_and_nre"
	ProjectIndirects  = "project_indirects"
	OwnersCost        = "owners_cost"
	Commissioning     = "commissioning"
	Logistics         = "logistics"
)

// Unmapped is the sentinel category for items no keyword set matched.
const Unmapped = "Unmapped"

// PrecedenceRule rewrites a label containing both A and B: the two tokens
// are stripped and Winner is appended.
type PrecedenceRule struct {
	A      string
	B      string
	Winner string
}

// Ruleset is the consolidation configuration artifact.
type Ruleset struct {
	Version       string
	Overrides     []string
	PairwiseRules []PrecedenceRule
	DisplayNames  map[string]string
}

// DisplayName translates an internal token to its external label. Unknown
// tokens pass through untouched.
func (r Ruleset) DisplayName(token string) string {
	if name, ok := r.DisplayNames[token]; ok {
		return name
	}
	return token
}

// Default returns the current ruleset revision.
//
// Overrides run in list order and each one replaces the whole label with its
// own token when present. Running design_and_nre first means a label that
// matched both design_and_nre and process_equipment resolves to
// design_and_nre: the first rewrite erases the process_equipment token
// before its own override gets to look for it. Existing exports depend on
// exactly this outcome.
//
// The pairwise list covers every token pair once, plus two legacy reversed
// entries at the tail that earlier rules normally shadow. Rules fire
// sequentially against each label's current state, so a three-way match is
// resolved incrementally in list order.
func Default() Ruleset {
	return Ruleset{
		Version: "2026.02",
		Overrides: []string{
			DesignAndNRE,
			ProcessEquipment,
		},
		PairwiseRules: []PrecedenceRule{
			{Construction, StandardEquipment, StandardEquipment},
			{Construction, ProcessEquipment, ProcessEquipment},
			{Construction, DesignAndNRE, Construction},
			{Construction, ProjectIndirects, Construction},
			{Construction, OwnersCost, Construction},
			{Construction, Commissioning, Construction},
			{Construction, Logistics, Construction},
			{StandardEquipment, ProcessEquipment, ProcessEquipment},
			{StandardEquipment, DesignAndNRE, StandardEquipment},
			{StandardEquipment, ProjectIndirects, StandardEquipment},
			{StandardEquipment, OwnersCost, StandardEquipment},
			{StandardEquipment, Commissioning, StandardEquipment},
			{StandardEquipment, Logistics, StandardEquipment},
			{ProcessEquipment, DesignAndNRE, ProcessEquipment},
			{ProcessEquipment, ProjectIndirects, ProcessEquipment},
			{ProcessEquipment, OwnersCost, ProcessEquipment},
			{ProcessEquipment, Commissioning, ProcessEquipment},
			{ProcessEquipment, Logistics, ProcessEquipment},
			{DesignAndNRE, ProjectIndirects, DesignAndNRE},
			{DesignAndNRE, OwnersCost, DesignAndNRE},
			{DesignAndNRE, Commissioning, Commissioning},
			{DesignAndNRE, Logistics, DesignAndNRE},
			{ProjectIndirects, OwnersCost, ProjectIndirects},
			{ProjectIndirects, Commissioning, Commissioning},
			{ProjectIndirects, Logistics, Logistics},
			{OwnersCost, Commissioning, Commissioning},
			{OwnersCost, Logistics, Logistics},
			{Commissioning, Logistics, Commissioning},
			// Legacy reversed entries kept for order compatibility; rule 1
			// and rule 8 erase their trigger tokens first on two-token
			// labels, so these only matter for longer chains.
			{StandardEquipment, Construction, Construction},
			{ProcessEquipment, StandardEquipment, ProcessEquipment},
		},
		DisplayNames: map[string]string{
			Construction:      "Construction",
			StandardEquipment: "Standard Equipment",
			ProcessEquipment:  "Process Equipment",
			DesignAndNRE:      "Design & NRE",
			ProjectIndirects:  "Project Indirects",
			OwnersCost:        "Owner's Cost",
			Commissioning:     "Commissioning",
			Logistics:         "Logistics",
			Unmapped:          "Unmapped",

			// Level-2 layer, standard dictionary tokens.
			"earthworks":           "Earthworks",
			"concrete_works":       "Concrete Works",
			"structural_steel":     "Structural Steel",
			"buildings":            "Buildings",
			"scaffolding":          "Scaffolding",
			"painting_coating":     "Painting & Coating",
			"insulation_works":     "Insulation Works",
			"site_services":        "Site Services",
			"pumps_compressors":    "Pumps & Compressors",
			"vessels_columns":      "Vessels & Columns",
			"heat_exchangers":      "Heat Exchangers",
			"piping_systems":       "Piping Systems",
			"electrical_equipment": "Electrical Equipment",
			"instrumentation":      "Instrumentation",
			"hvac_systems":         "HVAC Systems",
			"engineering_services": "Engineering Services",
			"project_management":   "Project Management",
			"temporary_facilities": "Temporary Facilities",
			"freight_forwarding":   "Freight & Forwarding",
			"customs_duties":       "Customs & Duties",
			"insurance_permits":    "Insurance & Permits",
			"owners_team":          "Owner's Team",
			"commissioning_spares": "Commissioning Spares",
			"startup_services":     "Startup Services",
		},
	}
}
