package ratecatalog

import "github.com/KDZFoundation/agrooptima/internal/model"

// Seed returns the built-in rate tables loaded on first run: the official
// 2025 campaign rates and the 2026 forecast. Point-based rows belong to the
// carbon-farming scheme group and pay per point rather than per hectare.
//
// conflictsWith is deliberately declared on one side only where the source
// tables do so; Catalog normalizes the relation.
func Seed() []model.SubsidyRate {
	return append(rates2025(), rates2026()...)
}

func rates2025() []model.SubsidyRate {
	return []model.SubsidyRate{
		// Tabela 1. Płatności bezpośrednie
		{ID: "P25_01", Name: "Podstawowe wsparcie dochodów", ShortName: "PWD", Rate: 488.55, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_02", Name: "Płatność redystrybucyjna", ShortName: "P_RED", Rate: 176.84, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_03", Name: "Płatność dla młodych rolników", ShortName: "P_MR", Rate: 248.16, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_04", Name: "Płatność do bydła", ShortName: "P_BYD", Rate: 322.49, Unit: "PLN/szt.", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_05", Name: "Płatność do krów", ShortName: "P_KR", Rate: 412.63, Unit: "PLN/szt.", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_06", Name: "Płatność do owiec", ShortName: "P_OW", Rate: 110.16, Unit: "PLN/szt.", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_07", Name: "Płatność do kóz", ShortName: "P_KOZ", Rate: 48.12, Unit: "PLN/szt.", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_08", Name: "Płatność do roślin strączkowych na nasiona", ShortName: "P_STR", Rate: 879.96, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_09", Name: "Płatność do roślin pastewnych", ShortName: "P_PAS", Rate: 430.18, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_10", Name: "Płatność do chmielu", ShortName: "P_CHM", Rate: 1864.49, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_11", Name: "Płatność do ziemniaków skrobiowych", ShortName: "P_ZS", Rate: 1580.89, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_12", Name: "Płatność do buraków cukrowych", ShortName: "P_BC", Rate: 1284.14, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_13", Name: "Płatność do pomidorów", ShortName: "P_POM", Rate: 2097.56, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_14", Name: "Płatność do truskawek", ShortName: "P_TRU", Rate: 1495.79, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_15", Name: "Płatność do lnu", ShortName: "P_LEN", Rate: 542.69, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_16", Name: "Płatność do konopi włóknistych", ShortName: "P_KON", Rate: 168.99, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_17", Name: "Płatność niezwiązana do tytoniu - Virginia", ShortName: "P_TYT_V", Rate: 2.24, Unit: "PLN/kg", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_18", Name: "Płatność niezwiązana do tytoniu - pozostałe", ShortName: "P_TYT_P", Rate: 2.24, Unit: "PLN/kg", Category: model.CategoryDirectPayment, Year: 2025},
		{ID: "P25_19", Name: "Uzupełniająca płatność podstawowa", ShortName: "UPP", Rate: 55.95, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2025},

		// Tabela 2. Ekoschematy obszarowe (rolnictwo węglowe: stawki punktowe)
		{ID: "E25_01", Name: "Ekstensywne użytkowanie TUZ z obsadą zwierząt", ShortName: "E_TUZ", Points: 5, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025,
			Description: "Wymóg obsady zwierząt 0,3-2 DJP/ha TUZ."},
		{ID: "E25_02", Name: "Międzyplony ozime lub wsiewki śródplonowe", ShortName: "E_MPW", Points: 5, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025,
			Description: "Utrzymanie międzyplonu od 1 października do 15 lutego."},
		{ID: "E25_03", Name: "Opracowanie i przestrzeganie planu nawożenia - wariant podstawowy", ShortName: "E_OPN", Points: 1, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025,
			ConflictsWith: []string{"E_OPW"}},
		{ID: "E25_04", Name: "Opracowanie i przestrzeganie planu nawożenia - wariant z wapnowaniem", ShortName: "E_OPW", Points: 3, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025,
			Description: "Wapnowanie nie częściej niż raz na 4 lata."},
		{ID: "E25_05", Name: "Zróżnicowana struktura upraw", ShortName: "E_ZSU", Points: 3, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_06", Name: "Wymieszanie obornika na gruntach ornych w ciągu 12 godzin", ShortName: "E_OBOR", Points: 2, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025,
			ConflictsWith: []string{"E_GNOJ"}},
		{ID: "E25_07", Name: "Stosowanie nawozów płynnych innymi metodami niż rozbryzgowo", ShortName: "E_GNOJ", Points: 3, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_08", Name: "Uproszczone systemy uprawy", ShortName: "E_USU", Points: 4, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025,
			ConflictsWith: []string{"E_GWP"}},
		{ID: "E25_09", Name: "Wymieszanie słomy z glebą", ShortName: "E_SLO", Points: 2, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2025},

		// Ekoschematy ze stawką powierzchniową
		{ID: "E25_10", Name: "Obszary z roślinami miododajnymi", ShortName: "E_MIO", Rate: 216.53, Unit: "EUR/ha", Category: model.CategoryEcoScheme, Year: 2025,
			Description: "Stawka publikowana w EUR, przeliczana kursem kampanii."},
		{ID: "E25_11", Name: "Integrowana Produkcja Roślin (Sadownicze)", ShortName: "E_IPR_SAD", Rate: 1185.24, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_12", Name: "Integrowana Produkcja Roślin (Jagodowe)", ShortName: "E_IPR_JAG", Rate: 1069.41, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_13", Name: "Integrowana Produkcja Roślin (Rolnicze)", ShortName: "E_IPR", Rate: 505.18, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_14", Name: "Integrowana Produkcja Roślin (Warzywne)", ShortName: "E_IPR_WAR", Rate: 1069.41, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_15", Name: "Biologiczna ochrona upraw", ShortName: "E_BIO", Rate: 310.88, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_16", Name: "Biologiczna uprawa - preparaty mikrobiologiczne", ShortName: "E_BIO_MIK", Rate: 87.52, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_17", Name: "Retencjonowanie wody na trwałych użytkach zielonych", ShortName: "E_WOD", Rate: 245.98, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025,
			ConflictsWith: []string{"E_GWP"}},
		{ID: "E25_18", Name: "Grunty wyłączone z produkcji", ShortName: "E_GWP", Rate: 437.57, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_19", Name: "Materiał siewny (Zboża)", ShortName: "E_MS_ZB", Rate: 104.15, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_20", Name: "Materiał siewny (Strączkowe)", ShortName: "E_MS_STR", Rate: 168.93, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},
		{ID: "E25_21", Name: "Materiał siewny (Ziemniaki)", ShortName: "E_MS_ZIE", Rate: 436.76, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2025},

		// Tabela 3. Dobrostan zwierząt
		{ID: "D25_01", Name: "Dobrostan bydła mlecznego", ShortName: "D_BM", Rate: 380.00, Unit: "PLN/DJP", Category: model.CategoryWelfare, Year: 2025},
	}
}

func rates2026() []model.SubsidyRate {
	return []model.SubsidyRate{
		// Prognoza stawek 2026
		{ID: "S26_01", Name: "Rośliny bobowate", ShortName: "E_BOB", Rate: 700.00, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2026},
		{ID: "S26_02", Name: "Międzyplony ozime", ShortName: "E_MPW", Points: 5, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2026},
		{ID: "S26_03", Name: "Integrowana Produkcja", ShortName: "E_IPR", Rate: 650.00, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2026},
		{ID: "S26_04", Name: "Wymieszanie obornika", ShortName: "E_OBOR", Points: 2, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2026,
			ConflictsWith: []string{"E_GNOJ"}},
		{ID: "S26_05", Name: "Stosowanie nawozów płynnych innymi metodami niż rozbryzgowo", ShortName: "E_GNOJ", Points: 3, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2026},
		{ID: "S26_06", Name: "Uproszczone systemy uprawy", ShortName: "E_USU", Points: 4, Unit: "PLN/pkt", Category: model.CategoryEcoScheme, Year: 2026},
		{ID: "S26_07", Name: "Retencjonowanie wody na TUZ", ShortName: "E_WOD", Rate: 250.00, Unit: "PLN/ha", Category: model.CategoryEcoScheme, Year: 2026},
		{ID: "S26_08", Name: "Dobrostan (bydło)", ShortName: "D_BM", Rate: 380.00, Unit: "PLN/DJP", Category: model.CategoryWelfare, Year: 2026},
		{ID: "S26_09", Name: "Podstawowe wsparcie dochodów", ShortName: "PWD", Rate: 490.00, Unit: "PLN/ha", Category: model.CategoryDirectPayment, Year: 2026},
	}
}
