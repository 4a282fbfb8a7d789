package wardrobe

// Option is a value/label pair offered to clients.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories are the item categories a wardrobe item may be filed under.
var Categories = []Option{
	{Value: "shorts", Label: "Shorts"},
	{Value: "pants", Label: "Long Pants"},
	{Value: "skirts", Label: "Skirts"},
	{Value: "tshirts", Label: "T-Shirts"},
	{Value: "sweaters", Label: "Sweaters"},
	{Value: "hoodies", Label: "Hoodies"},
	{Value: "vests", Label: "Vests"},
	{Value: "dresses", Label: "Dresses"},
	{Value: "shoes", Label: "Shoes"},
	{Value: "socks", Label: "Socks"},
	{Value: "bracelets", Label: "Bracelets"},
	{Value: "rings", Label: "Rings"},
	{Value: "necklaces", Label: "Necklaces"},
}

// StyleTags are the suggested style tags.
var StyleTags = []Option{
	{Value: "casual", Label: "Casual"},
	{Value: "formal", Label: "Formal"},
	{Value: "business", Label: "Business"},
	{Value: "party", Label: "Party"},
	{Value: "summer", Label: "Summer"},
	{Value: "winter", Label: "Winter"},
	{Value: "spring", Label: "Spring"},
	{Value: "fall", Label: "Fall"},
	{Value: "vintage", Label: "Vintage"},
	{Value: "trendy", Label: "Trendy"},
	{Value: "comfortable", Label: "Comfortable"},
	{Value: "elegant", Label: "Elegant"},
	{Value: "sporty", Label: "Sporty"},
	{Value: "bohemian", Label: "Bohemian"},
	{Value: "minimalist", Label: "Minimalist"},
}

// IsKnownCategory reports whether value is one of Categories.
func IsKnownCategory(value string) bool {
	for _, c := range Categories {
		if c.Value == value {
			return true
		}
	}
	return false
}
