// Package compliance contiene el catálogo estático de obligaciones de cumplimiento
// (tipos de registro estatutario y reglas de vencimiento) usado por la firma asesora.
package compliance

// RegistrationType identifica el registro estatutario al que pertenece una obligación.
type RegistrationType string

// =============================================================================
// Tipos de registro (enum cerrado, 23 valores)
// =============================================================================

const (
	RegGSTIN                      RegistrationType = "GSTIN"
	RegPAN                        RegistrationType = "PAN"
	RegTAN                        RegistrationType = "TAN"
	RegCIN                        RegistrationType = "CIN"
	RegLLPIN                      RegistrationType = "LLPIN"
	RegIEC                        RegistrationType = "IEC"
	RegESI                        RegistrationType = "ESI"
	RegEPF                        RegistrationType = "EPF"
	RegProfessionalTax            RegistrationType = "PROFESSIONAL_TAX"
	RegShopEstablishment          RegistrationType = "SHOP_ESTABLISHMENT"
	RegFSSAI                      RegistrationType = "FSSAI"
	RegStartupDPIIT               RegistrationType = "STARTUP_DPIIT"
	RegDIN                        RegistrationType = "DIN"
	RegTrustSociety               RegistrationType = "TRUST_SOCIETY"
	RegSEZEOU                     RegistrationType = "SEZ_EOU"
	RegCooperativeSociety         RegistrationType = "COOPERATIVE_SOCIETY"
	RegLabourWelfareFund          RegistrationType = "LABOUR_WELFARE_FUND"
	RegPollutionControl           RegistrationType = "POLLUTION_CONTROL"
	RegImporterExporterMembership RegistrationType = "IMPORTER_EXPORTER_MEMBERSHIP"
	RegTradeLicense               RegistrationType = "TRADE_LICENSE"
	RegFactoryLicense             RegistrationType = "FACTORY_LICENSE"
	RegBOCW                       RegistrationType = "BOCW"
	RegMSMEUdyam                  RegistrationType = "MSME_UDYAM"
)

// RegistrationTypes lista los tipos en orden de presentación.
var RegistrationTypes = []RegistrationType{
	RegGSTIN, RegPAN, RegTAN, RegCIN, RegLLPIN, RegIEC, RegESI, RegEPF,
	RegProfessionalTax, RegShopEstablishment, RegFSSAI, RegStartupDPIIT, RegDIN,
	RegTrustSociety, RegSEZEOU, RegCooperativeSociety, RegLabourWelfareFund,
	RegPollutionControl, RegImporterExporterMembership, RegTradeLicense,
	RegFactoryLicense, RegBOCW, RegMSMEUdyam,
}

var registrationTypeLabels = map[RegistrationType]string{
	RegGSTIN:                      "GST Registration (GSTIN)",
	RegPAN:                        "Permanent Account Number (PAN)",
	RegTAN:                        "Tax Deduction Account Number (TAN)",
	RegCIN:                        "Company Identification Number (CIN)",
	RegLLPIN:                      "LLP Identification Number (LLPIN)",
	RegIEC:                        "Importer Exporter Code (IEC)",
	RegESI:                        "Employees' State Insurance (ESI)",
	RegEPF:                        "Employees' Provident Fund (EPF)",
	RegProfessionalTax:            "Professional Tax",
	RegShopEstablishment:          "Shop & Establishment",
	RegFSSAI:                      "FSSAI Food License",
	RegStartupDPIIT:               "Startup India (DPIIT)",
	RegDIN:                        "Director Identification Number (DIN)",
	RegTrustSociety:               "Trust / Society",
	RegSEZEOU:                     "SEZ / EOU Unit",
	RegCooperativeSociety:         "Cooperative Society",
	RegLabourWelfareFund:          "Labour Welfare Fund",
	RegPollutionControl:           "Pollution Control Consent",
	RegImporterExporterMembership: "Importer-Exporter Membership (RCMC)",
	RegTradeLicense:               "Trade License",
	RegFactoryLicense:             "Factory License",
	RegBOCW:                       "Building & Other Construction Workers (BOCW)",
	RegMSMEUdyam:                  "MSME Udyam",
}

// Valid indica si el código pertenece al enum.
func (t RegistrationType) Valid() bool {
	_, ok := registrationTypeLabels[t]
	return ok
}

// Label devuelve la etiqueta legible; vacío si el tipo no existe.
func (t RegistrationType) Label() string {
	return registrationTypeLabels[t]
}
