package compliance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meses ancla de uso frecuente. El año fiscal indio cierra en marzo.
var (
	quarterEnds  = []time.Month{time.March, time.June, time.September, time.December}
	halfYearEnds = []time.Month{time.March, time.September}
	calHalfEnds  = []time.Month{time.June, time.December}
	fyEnd        = []time.Month{time.March}
	cyEnd        = []time.Month{time.December}
)

func rupees(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// =============================================================================
// Tabla de reglas incorporada. Incluye todas las obligaciones de cada bloque de
// registro; los códigos son únicos en toda la tabla.
// =============================================================================

var builtinRules = []Rule{
	// ── GSTIN ────────────────────────────────────────────────────────────────
	{
		Code: "GSTR_1_MONTHLY", Name: "GSTR-1 (monthly outward supplies)",
		RegistrationType: RegGSTIN, Frequency: FrequencyMonthly,
		DueDay: 11, DueMonthOffset: 1, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(10000),
	},
	{
		Code: "GSTR_1_QUARTERLY_QRMP", Name: "GSTR-1 (quarterly, QRMP scheme)",
		RegistrationType: RegGSTIN, Frequency: FrequencyQuarterly,
		DueDay: 13, DueMonthOffset: 1, AnchorMonths: quarterEnds,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(10000),
	},
	{
		Code: "GSTR_3B_MONTHLY", Name: "GSTR-3B (monthly summary return)",
		RegistrationType: RegGSTIN, Frequency: FrequencyMonthly,
		DueDay: 20, DueMonthOffset: 1, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(10000),
	},
	{
		Code: "GSTR_3B_QUARTERLY_QRMP", Name: "GSTR-3B (quarterly, QRMP scheme)",
		RegistrationType: RegGSTIN, Frequency: FrequencyQuarterly,
		DueDay: 22, DueMonthOffset: 1, AnchorMonths: quarterEnds,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(10000),
	},
	{
		Code: "GST_CMP_08", Name: "CMP-08 (composition dealer statement)",
		RegistrationType: RegGSTIN, Frequency: FrequencyQuarterly,
		DueDay: 18, DueMonthOffset: 1, AnchorMonths: quarterEnds,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(2000),
	},
	{
		Code: "GSTR_7_MONTHLY", Name: "GSTR-7 (TDS under GST)",
		RegistrationType: RegGSTIN, Frequency: FrequencyMonthly,
		DueDay: 10, DueMonthOffset: 1,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(2000),
	},
	{
		Code: "GSTR_4_ANNUAL", Name: "GSTR-4 (composition annual return)",
		RegistrationType: RegGSTIN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 1, AnchorMonths: fyEnd,
		LateFeePerDay: rupees(50), MaxLateFee: rupees(2000),
	},
	{
		Code: "GSTR_9_ANNUAL", Name: "GSTR-9 (annual return)",
		RegistrationType: RegGSTIN, Frequency: FrequencyYearly,
		DueDay: 31, DueMonthOffset: 9, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(200), MaxLateFee: rupees(20000),
	},

	// ── PAN (impuesto sobre la renta) ───────────────────────────────────────
	{
		Code: "ADVANCE_TAX_QUARTERLY", Name: "Advance tax instalment",
		RegistrationType: RegPAN, Frequency: FrequencyQuarterly,
		DueDay: 15, DueMonthOffset: 0,
		AnchorMonths: []time.Month{time.June, time.September, time.December, time.March},
		AutoTaskGenerationEnabled: true,
	},
	{
		Code: "ADVANCE_TAX_PRESUMPTIVE_44AD_44ADA", Name: "Advance tax (presumptive 44AD/44ADA)",
		RegistrationType: RegPAN, Frequency: FrequencyYearly,
		DueDay: 15, DueMonthOffset: 0, AnchorMonths: fyEnd,
	},
	{
		Code: "ITR_NON_AUDIT", Name: "Income tax return (non-audit)",
		RegistrationType: RegPAN, Frequency: FrequencyYearly,
		DueDay: 31, DueMonthOffset: 4, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "ITR_AUDIT", Name: "Income tax return (audit cases)",
		RegistrationType: RegPAN, Frequency: FrequencyYearly,
		DueDay: 31, DueMonthOffset: 7, AnchorMonths: fyEnd,
	},
	{
		Code: "TAX_AUDIT_REPORT_3CD", Name: "Tax audit report (Form 3CA/3CB-3CD)",
		RegistrationType: RegPAN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 6, AnchorMonths: fyEnd,
	},

	// ── TAN (TDS/TCS) ───────────────────────────────────────────────────────
	{
		// Marzo se deposita hasta el 30 de abril: lo resuelve TDS_PAYMENT_MARCH.
		Code: "TDS_PAYMENT_MONTHLY", Name: "TDS/TCS deposit",
		RegistrationType: RegTAN, Frequency: FrequencyMonthly,
		DueDay: 7, DueMonthOffset: 1, ExcludedMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "TDS_PAYMENT_MARCH", Name: "TDS deposit for March",
		RegistrationType: RegTAN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 1, AnchorMonths: fyEnd,
		AutoTaskGenerationEnabled: true,
	},
	{
		Code: "TDS_RETURN_24Q_26Q", Name: "Quarterly TDS return (24Q/26Q)",
		RegistrationType: RegTAN, Frequency: FrequencyQuarterly,
		DueDay: 31, DueMonthOffset: 1, AnchorMonths: quarterEnds,
		AnchorOverrides:           map[time.Month]AnchorOverride{time.March: {DueDay: 31, DueMonthOffset: 2}},
		AutoTaskGenerationEnabled: true,
		LateFeePerDay:             rupees(200),
	},
	{
		Code: "TCS_RETURN_27EQ", Name: "Quarterly TCS return (27EQ)",
		RegistrationType: RegTAN, Frequency: FrequencyQuarterly,
		DueDay: 15, DueMonthOffset: 1, AnchorMonths: quarterEnds,
		AnchorOverrides: map[time.Month]AnchorOverride{time.March: {DueDay: 15, DueMonthOffset: 2}},
		LateFeePerDay:   rupees(200),
	},
	{
		Code: "FORM_16_ISSUE", Name: "Issue of Form 16 to employees",
		RegistrationType: RegTAN, Frequency: FrequencyYearly,
		DueDay: 15, DueMonthOffset: 3, AnchorMonths: fyEnd,
	},

	// ── CIN (ROC) ───────────────────────────────────────────────────────────
	{
		Code: "ROC_AOC_4", Name: "AOC-4 (financial statements)",
		RegistrationType: RegCIN, Frequency: FrequencyYearly,
		DueDay: 29, DueMonthOffset: 7, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(100),
	},
	{
		Code: "ROC_MGT_7", Name: "MGT-7 (annual return)",
		RegistrationType: RegCIN, Frequency: FrequencyYearly,
		DueDay: 29, DueMonthOffset: 8, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(100),
	},
	{
		Code: "ROC_ADT_1", Name: "ADT-1 (auditor appointment)",
		RegistrationType: RegCIN, Frequency: FrequencyYearly,
		DueDay: 14, DueMonthOffset: 7, AnchorMonths: fyEnd,
	},
	{
		Code: "ROC_DPT_3", Name: "DPT-3 (return of deposits)",
		RegistrationType: RegCIN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 3, AnchorMonths: fyEnd,
	},
	{
		Code: "ROC_MSME_1", Name: "MSME-1 (outstanding dues to MSMEs)",
		RegistrationType: RegCIN, Frequency: FrequencyHalfYearly,
		DueDay: 30, DueMonthOffset: 1, AnchorMonths: halfYearEnds,
		AnchorOverrides: map[time.Month]AnchorOverride{time.September: {DueDay: 31, DueMonthOffset: 1}},
	},

	// ── LLPIN ───────────────────────────────────────────────────────────────
	{
		Code: "LLP_FORM_11", Name: "LLP Form 11 (annual return)",
		RegistrationType: RegLLPIN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 2, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(100),
	},
	{
		Code: "LLP_FORM_8", Name: "LLP Form 8 (statement of account & solvency)",
		RegistrationType: RegLLPIN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 7, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(100),
	},

	// ── IEC ─────────────────────────────────────────────────────────────────
	{
		Code: "IEC_ANNUAL_UPDATE", Name: "IEC annual profile update",
		RegistrationType: RegIEC, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 3, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},

	// ── ESI / EPF ───────────────────────────────────────────────────────────
	{
		Code: "ESI_CONTRIBUTION_MONTHLY", Name: "ESI contribution",
		RegistrationType: RegESI, Frequency: FrequencyMonthly,
		DueDay: 15, DueMonthOffset: 1, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "EPF_ECR_MONTHLY", Name: "EPF ECR and contribution",
		RegistrationType: RegEPF, Frequency: FrequencyMonthly,
		DueDay: 15, DueMonthOffset: 1, AutoTaskGenerationEnabled: true,
	},

	// ── Professional tax ────────────────────────────────────────────────────
	{
		Code: "PT_RETURN_MONTHLY", Name: "Professional tax return (PTRC)",
		RegistrationType: RegProfessionalTax, Frequency: FrequencyMonthly,
		DueDay: 31, DueMonthOffset: 0, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "PT_ENROLMENT_ANNUAL", Name: "Professional tax enrolment payment (PTEC)",
		RegistrationType: RegProfessionalTax, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 3, AnchorMonths: fyEnd,
	},

	// ── Licencias con vencimiento ───────────────────────────────────────────
	{
		Code: "SHOP_LICENSE_RENEWAL", Name: "Shop & establishment renewal",
		RegistrationType: RegShopEstablishment, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 30, PostExpiryGraceDays: 30, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "FSSAI_LICENSE_RENEWAL", Name: "FSSAI license renewal",
		RegistrationType: RegFSSAI, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 120, PostExpiryGraceDays: 90, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(100),
	},
	{
		Code: "FSSAI_ANNUAL_RETURN_D1", Name: "FSSAI annual return (Form D-1)",
		RegistrationType: RegFSSAI, Frequency: FrequencyYearly,
		DueDay: 31, DueMonthOffset: 2, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
		LateFeePerDay: rupees(100),
	},
	{
		Code: "STARTUP_DPIIT_RECOGNITION_EXPIRY", Name: "DPIIT recognition validity",
		RegistrationType: RegStartupDPIIT, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 90,
	},
	{
		Code: "DIR_3_KYC", Name: "DIR-3 KYC",
		RegistrationType: RegDIN, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 6, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "TRUST_FORM_10B_AUDIT", Name: "Trust audit report (Form 10B/10BB)",
		RegistrationType: RegTrustSociety, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 6, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "TRUST_12A_80G_RENEWAL", Name: "12A/80G registration renewal",
		RegistrationType: RegTrustSociety, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 180, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "SEZ_QPR", Name: "SEZ quarterly progress report",
		RegistrationType: RegSEZEOU, Frequency: FrequencyQuarterly,
		DueDay: 30, DueMonthOffset: 1, AnchorMonths: quarterEnds,
	},
	{
		Code: "SEZ_APR", Name: "SEZ annual performance report",
		RegistrationType: RegSEZEOU, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 6, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "COOP_ANNUAL_RETURN", Name: "Cooperative society annual return",
		RegistrationType: RegCooperativeSociety, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 6, AnchorMonths: fyEnd, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "LWF_HALF_YEARLY", Name: "Labour welfare fund contribution",
		RegistrationType: RegLabourWelfareFund, Frequency: FrequencyHalfYearly,
		DueDay: 15, DueMonthOffset: 1, AnchorMonths: calHalfEnds, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "PCB_CONSENT_RENEWAL", Name: "Pollution control consent renewal",
		RegistrationType: RegPollutionControl, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 120, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "PCB_ENVIRONMENT_STATEMENT", Name: "Environment statement (Form V)",
		RegistrationType: RegPollutionControl, Frequency: FrequencyYearly,
		DueDay: 30, DueMonthOffset: 6, AnchorMonths: fyEnd,
	},
	{
		Code: "RCMC_RENEWAL", Name: "RCMC membership renewal",
		RegistrationType: RegImporterExporterMembership, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 60, PostExpiryGraceDays: 30, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "TRADE_LICENSE_RENEWAL", Name: "Trade license renewal",
		RegistrationType: RegTradeLicense, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 30, PostExpiryGraceDays: 30, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "FACTORY_LICENSE_RENEWAL", Name: "Factory license renewal",
		RegistrationType: RegFactoryLicense, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 60, AutoTaskGenerationEnabled: true,
	},
	{
		Code: "FACTORY_HALF_YEARLY_RETURN", Name: "Factories Act half-yearly return",
		RegistrationType: RegFactoryLicense, Frequency: FrequencyHalfYearly,
		DueDay: 31, DueMonthOffset: 1, AnchorMonths: calHalfEnds,
	},
	{
		Code: "FACTORY_ANNUAL_RETURN", Name: "Factories Act annual return",
		RegistrationType: RegFactoryLicense, Frequency: FrequencyYearly,
		DueDay: 31, DueMonthOffset: 1, AnchorMonths: cyEnd, PeriodLabelType: LabelCalendarYear,
		AutoTaskGenerationEnabled: true,
	},
	{
		Code: "BOCW_ANNUAL_RETURN", Name: "BOCW annual return",
		RegistrationType: RegBOCW, Frequency: FrequencyYearly,
		DueDay: 15, DueMonthOffset: 2, AnchorMonths: cyEnd, PeriodLabelType: LabelCalendarYear,
		AutoTaskGenerationEnabled: true,
	},
	{
		Code: "BOCW_REGISTRATION_RENEWAL", Name: "BOCW establishment registration renewal",
		RegistrationType: RegBOCW, Frequency: FrequencyExpiryBased,
		RenewalWindowDaysBeforeExpiry: 30,
	},
	{
		Code: "UDYAM_ANNUAL_UPDATE", Name: "Udyam registration annual update",
		RegistrationType: RegMSMEUdyam, Frequency: FrequencyYearly,
		DueDay: 31, DueMonthOffset: 4, AnchorMonths: fyEnd,
	},
}
