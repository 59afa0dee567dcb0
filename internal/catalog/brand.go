package catalog

// Brand is a manufacturer shown on product cards.
type Brand int

const (
	BrandUnknown Brand = iota
	BrandAdidas
	BrandAmazon
	BrandCanon
	BrandIPhone
	BrandSamsung
	BrandSony
	BrandNokia
	BrandHuawei
	BrandRealme
	BrandOnePlus
	BrandOppo
	BrandInfinix
	BrandRolex
	BrandSonata
	BrandAmbrane
	BrandTechno
	BrandKTM
	BrandMeta
	BrandPhilips
	BrandUsha
	BrandAngebot
	BrandSurya
	BrandMucckily
	BrandArtstudio
	BrandKemei
	BrandNutriPto
	BrandTPLinkTapo

	brandCount
)

// brandLabels are the labels printed on product cards. "Huawe" is the
// label the catalog actually uses.
var brandLabels = [...]string{
	BrandUnknown:    "",
	BrandAdidas:     "adidas",
	BrandAmazon:     "Amazon",
	BrandCanon:      "Canon",
	BrandIPhone:     "iPhone",
	BrandSamsung:    "Samsung",
	BrandSony:       "Sony",
	BrandNokia:      "Nokia",
	BrandHuawei:     "Huawe",
	BrandRealme:     "Realme",
	BrandOnePlus:    "OnePlus",
	BrandOppo:       "OPPO",
	BrandInfinix:    "Infinix",
	BrandRolex:      "Rolex",
	BrandSonata:     "Sonata",
	BrandAmbrane:    "Ambrane",
	BrandTechno:     "TECHNO",
	BrandKTM:        "KTM",
	BrandMeta:       "META",
	BrandPhilips:    "Philips",
	BrandUsha:       "Usha",
	BrandAngebot:    "ANGEBOT",
	BrandSurya:      "Surya",
	BrandMucckily:   "MUCCKILY",
	BrandArtstudio:  "ARTSTUDIO",
	BrandKemei:      "KEMEI",
	BrandNutriPto:   "NutriPto",
	BrandTPLinkTapo: "TP-Link Tapo",
}

const defaultDescription = "High-quality product with excellent features and reliable performance."

var brandDescriptions = [...]string{
	BrandUnknown:    defaultDescription,
	BrandAdidas:     "High-quality product from adidas, known for comfort and style. Perfect for everyday wear.",
	BrandAmazon:     "Premium smart device from Amazon with advanced features and reliable performance.",
	BrandCanon:      "Professional-grade camera from Canon, delivering stunning image quality and versatility.",
	BrandIPhone:     "Latest iPhone model featuring cutting-edge technology, sleek design, and powerful performance.",
	BrandSamsung:    "Samsung flagship device with innovative features and exceptional display quality.",
	BrandSony:       "Sony audio product delivering superior sound quality and modern design.",
	BrandNokia:      "Reliable Nokia device built for durability and essential communication features.",
	BrandHuawei:     "Huawei product offering innovative technology and sleek design.",
	BrandRealme:     "Realme smartphone with impressive specifications at an affordable price.",
	BrandOnePlus:    "OnePlus device known for fast performance and clean Android experience.",
	BrandOppo:       "OPPO smartphone featuring stunning design and advanced camera capabilities.",
	BrandInfinix:    "Infinix device offering great value with modern features.",
	BrandRolex:      "Luxury timepiece from Rolex, symbolizing prestige and craftsmanship.",
	BrandSonata:     "Elegant watch from Sonata, perfect for formal and casual occasions.",
	BrandAmbrane:    "Ambrane accessory providing reliable charging and connectivity solutions.",
	BrandTechno:     "TECHNO product designed for modern lifestyle and convenience.",
	BrandKTM:        "KTM branded item combining style and functionality.",
	BrandMeta:       "META product for immersive virtual reality experiences.",
	BrandPhilips:    "Philips appliance known for quality and innovative design.",
	BrandUsha:       "Usha product offering reliable performance and durability.",
	BrandAngebot:    "Premium hair care appliance for professional results.",
	BrandSurya:      "Quality lighting solution from Surya.",
	BrandMucckily:   "MUCCKILY kitchen appliance for modern cooking needs.",
	BrandArtstudio:  "ARTSTUDIO musical instrument for creative expression.",
	BrandKemei:      "KEMEI grooming product for personal care.",
	BrandNutriPto:   "NutriPto kitchen accessory for healthy cooking.",
	BrandTPLinkTapo: "TP-Link Tapo smart home security device.",
}

// Both tables must cover every brand; a missing trailing entry fails to compile.
var (
	_ [brandCount]string = brandLabels
	_ [brandCount]string = brandDescriptions
)

// ParseBrand maps a card label to a Brand. Labels match exactly, case
// included; anything else is BrandUnknown.
func ParseBrand(label string) Brand {
	for b := BrandUnknown + 1; b < brandCount; b++ {
		if brandLabels[b] == label {
			return b
		}
	}
	return BrandUnknown
}

// String returns the card label.
func (b Brand) String() string {
	if b <= BrandUnknown || b >= brandCount {
		return "unknown"
	}
	return brandLabels[b]
}

// Description is the modal blurb for the brand.
func (b Brand) Description() string {
	if b < BrandUnknown || b >= brandCount {
		return defaultDescription
	}
	return brandDescriptions[b]
}
