package btw

import "github.com/florijnhq/florijn/internal/model"

// MerchantEntry maps a normalized merchant substring to a VAT rate.
type MerchantEntry struct {
	Key      string
	Category string
	Rate     model.TaxRate
}

// KeywordCategory maps description keywords to a VAT rate.
type KeywordCategory struct {
	Name        string
	Explanation string
	Keywords    []string
	Rate        model.TaxRate
}

// Tables holds the immutable lookup data the classifier runs on.
// Iteration order is definition order; earlier entries win.
type Tables struct {
	Merchants   []MerchantEntry
	Keywords    []KeywordCategory
	DefaultRate model.TaxRate
}

// RiskLists holds the curated merchant lists used by trust scoring.
// High-risk merchants sell goods across multiple VAT rates.
type RiskLists struct {
	High   []string
	Medium []string
}

// DefaultTables returns the curated Dutch VAT lookup tables.
func DefaultTables() Tables {
	low := model.StandardRate(9)
	high := model.StandardRate(21)
	exempt := model.ExemptRate()

	return Tables{
		DefaultRate: high,
		Merchants: []MerchantEntry{
			// Supermarkets and food (9%)
			{"albert heijn", "voeding", low},
			{"jumbo", "voeding", low},
			{"lidl", "voeding", low},
			{"aldi", "voeding", low},
			{"plus", "voeding", low},
			{"spar", "voeding", low},
			{"dirk", "voeding", low},
			{"dekamarkt", "voeding", low},
			{"vomar", "voeding", low},
			{"hoogvliet", "voeding", low},
			{"ekoplaza", "voeding", low},
			{"sligro", "voeding", low},
			{"hanos", "voeding", low},
			{"makro", "voeding", low},

			// Horeca (9%)
			{"starbucks", "horeca", low},
			{"la place", "horeca", low},

			// Books and culture (9%)
			{"bruna", "boeken", low},
			{"libris", "boeken", low},

			// Pharmacy retail (9%)
			{"etos", "medicijnen", low},
			{"kruidvat", "medicijnen", low},
			{"holland & barrett", "medicijnen", low},

			// Public transport (9%)
			{"nederlandse spoorwegen", "ov", low},
			{"arriva", "ov", low},
			{"connexxion", "ov", low},
			{"gvb", "ov", low},
			{"ret", "ov", low},
			{"htm", "ov", low},
			{"flixbus", "ov", low},

			// Fuel (21%)
			{"shell", "brandstof", high},
			{"esso", "brandstof", high},
			{"tinq", "brandstof", high},
			{"total", "brandstof", high},

			// Electronics (21%)
			{"mediamarkt", "elektronica", high},
			{"coolblue", "elektronica", high},
			{"alternate", "elektronica", high},
			{"expert", "elektronica", high},
			{"apple store", "elektronica", high},

			// Clothing and department stores (21%)
			{"wehkamp", "kleding", high},
			{"zalando", "kleding", high},
			{"h&m", "kleding", high},
			{"c&a", "kleding", high},
			{"primark", "kleding", high},
			{"zeeman", "kleding", high},
			{"hema", "kleding", high},
			{"bijenkorf", "kleding", high},

			// Home improvement (21%)
			{"ikea", "meubels", high},
			{"praxis", "meubels", high},
			{"gamma", "meubels", high},
			{"karwei", "meubels", high},
			{"hornbach", "meubels", high},

			// Insurance (exempt)
			{"aegon", "verzekering", exempt},
			{"achmea", "verzekering", exempt},
			{"zilveren kruis", "verzekering", exempt},
			{"interpolis", "verzekering", exempt},
			{"centraal beheer", "verzekering", exempt},
			{"nationale nederlanden", "verzekering", exempt},
			{"unive", "verzekering", exempt},

			// Banks and payment services (exempt)
			{"rabobank", "bank", exempt},
			{"abn amro", "bank", exempt},
			{"sns bank", "bank", exempt},
			{"asn bank", "bank", exempt},
			{"triodos bank", "bank", exempt},
			{"knab", "bank", exempt},
			{"bunq", "bank", exempt},
			{"revolut", "bank", exempt},
			{"ing", "bank", exempt},
			{"paypal", "betaaldienst", exempt},
			{"stripe", "betaaldienst", exempt},

			// Healthcare (exempt)
			{"ziekenhuis", "zorg", exempt},
			{"huisarts", "zorg", exempt},
			{"tandarts", "zorg", exempt},
			{"fysio", "zorg", exempt},
			{"apotheek", "zorg", exempt},
			{"thuiszorg", "zorg", exempt},

			// Education (exempt)
			{"universiteit", "onderwijs", exempt},
			{"hogeschool", "onderwijs", exempt},
			{"studielink", "onderwijs", exempt},
			{"duo", "onderwijs", exempt},

			// Government (exempt)
			{"belastingdienst", "overheid", exempt},
			{"gemeente", "overheid", exempt},
			{"waterschap", "overheid", exempt},
			{"kadaster", "overheid", exempt},

			// Sport and telecom and energy (21%)
			{"basic fit", "sport", high},
			{"anytime fitness", "sport", high},
			{"kpn", "telecom", high},
			{"vodafone", "telecom", high},
			{"t-mobile", "telecom", high},
			{"tele2", "telecom", high},
			{"ziggo", "telecom", high},
			{"xs4all", "telecom", high},
			{"eneco", "energie", high},
			{"essent", "energie", high},
			{"vattenfall", "energie", high},
			{"greenchoice", "energie", high},
			{"vitens", "water", high},

			// Delivery and parcel services (21%)
			{"thuisbezorgd", "bezorging", high},
			{"uber eats", "bezorging", high},
			{"deliveroo", "bezorging", high},
			{"postnl", "bezorging", high},
			{"dhl", "bezorging", high},
			{"dpd", "bezorging", high},

			// Professional services and software (21%)
			{"accountant", "advies", high},
			{"notaris", "advies", high},
			{"advocaat", "advies", high},
			{"google", "software", high},
			{"microsoft", "software", high},
			{"adobe", "software", high},
			{"slack", "software", high},
			{"zoom", "software", high},
			{"dropbox", "software", high},
			{"spotify", "software", high},
			{"netflix", "software", high},
			{"exact", "software", high},
			{"twinfield", "software", high},
			{"moneybird", "software", high},
			{"snelstart", "software", high},
		},
		Keywords: []KeywordCategory{
			{
				Name:        "voeding",
				Rate:        low,
				Keywords:    []string{"boodschappen", "supermarkt", "eten", "maaltijd", "lunch", "diner", "restaurant"},
				Explanation: "Voedingsmiddelen vallen onder 9%",
			},
			{
				Name:        "medicijnen",
				Rate:        low,
				Keywords:    []string{"medicijn", "verband", "pijnstiller", "paracetamol", "ibuprofen"},
				Explanation: "Medicijnen vallen onder 9%",
			},
			{
				Name:        "boeken",
				Rate:        low,
				Keywords:    []string{"boek", "ebook", "tijdschrift", "krant", "studieboek"},
				Explanation: "Boeken vallen onder 9%",
			},
			{
				Name:        "ov",
				Rate:        low,
				Keywords:    []string{"trein", "bus", "metro", "tram", "ov-chipkaart", "vervoer"},
				Explanation: "Openbaar vervoer valt onder 9%",
			},
			{
				Name:        "verzekering",
				Rate:        exempt,
				Keywords:    []string{"verzekering", "premie", "polis", "dekking"},
				Explanation: "Verzekeringen zijn vrijgesteld",
			},
			{
				Name:        "zorg",
				Rate:        exempt,
				Keywords:    []string{"zorg", "medisch", "behandeling", "therapie", "ziekenhuis"},
				Explanation: "Zorgdiensten zijn vrijgesteld",
			},
			{
				Name:        "onderwijs",
				Rate:        exempt,
				Keywords:    []string{"onderwijs", "les", "cursus", "opleiding", "training", "studie"},
				Explanation: "Onderwijs is vrijgesteld",
			},
			{
				Name:        "bank",
				Rate:        exempt,
				Keywords:    []string{"bankkosten", "rekening", "hypotheek", "krediet", "rente"},
				Explanation: "Bankdiensten zijn vrijgesteld",
			},
			{
				Name:        "software",
				Rate:        high,
				Keywords:    []string{"software", "licentie", "abonnement", "cloud", "saas"},
				Explanation: "Software valt onder 21%",
			},
		},
	}
}

// DefaultRiskLists returns the curated ambiguous-merchant lists.
func DefaultRiskLists() RiskLists {
	return RiskLists{
		High: []string{
			"hema", "amazon", "bol.com", "coolblue", "wehkamp", "gamma",
			"praxis", "karwei", "ikea", "makro", "sligro", "hanos",
		},
		Medium: []string{
			"mediamarkt", "expert", "bcc", "bijenkorf", "zalando",
		},
	}
}
