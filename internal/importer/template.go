package importer

// TemplateType what kind of rows a template maps.
type TemplateType string

const (
	TemplateParcels TemplateType = "PARCELS"
	TemplateCrops   TemplateType = "CROPS"
)

// MappingTemplate binds logical row keys to the column headers of a
// source file. The defaults follow the ARiMR registry exports; users
// can define their own for other advisory tools.
type MappingTemplate struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      TemplateType      `json:"type"`
	Separator string            `json:"separator"`
	Mappings  map[string]string `json:"mappings"`
}

// Logical keys recognized by the parcel and crop templates.
const (
	KeyName               = "name"
	KeyRegistrationNumber = "registrationNumber"
	KeyArea               = "area"
	KeyEligibleArea       = "eligibleArea"
	KeyCommune            = "commune"
	KeyYear               = "year"
	KeyCrop               = "crop"
	KeyEcoSchemes         = "ecoSchemes"
)

// DefaultTemplates returns the built-in mapping templates.
func DefaultTemplates() []MappingTemplate {
	return []MappingTemplate{
		{
			ID:        "tpl_default_parcels",
			Name:      "Domyślny - Ewidencja ARiMR",
			Type:      TemplateParcels,
			Separator: ";",
			Mappings: map[string]string{
				KeyName:               "Identyfikator działki ewidencyjnej",
				KeyRegistrationNumber: "Nr działki ewidencyjnej",
				KeyArea:               "Pow. gruntów ornych ogółem na działce [ha]",
				KeyEligibleArea:       "Hektar kwalifikujący się ogółem na działce [ha]",
				KeyCommune:            "Gmina",
			},
		},
		{
			ID:        "tpl_simple",
			Name:      "Prosty Import (Excel)",
			Type:      TemplateParcels,
			Separator: ";",
			Mappings: map[string]string{
				KeyName:               "Nazwa",
				KeyRegistrationNumber: "Numer",
				KeyArea:               "Powierzchnia",
				KeyEligibleArea:       "PEG",
			},
		},
		{
			ID:        "tpl_default_crops",
			Name:      "Domyślny - Struktura Zasiewów ARiMR",
			Type:      TemplateCrops,
			Separator: ";",
			Mappings: map[string]string{
				KeyRegistrationNumber: "Nr działki ewidencyjnej",
				KeyYear:               "Rok Uprawy",
				KeyCrop:               "Roślina uprawna",
				KeyEcoSchemes:         "Lista ekoschematów",
			},
		},
	}
}

// TemplateByID looks a template up among the built-ins.
func TemplateByID(id string) (MappingTemplate, bool) {
	for _, tpl := range DefaultTemplates() {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return MappingTemplate{}, false
}
