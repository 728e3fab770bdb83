package content_models

// Service is one card of the services grid.
type Service struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Testimonial struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}

// Stat is an animated counter; clients render Value followed by Suffix.
type Stat struct {
	Value  int    `json:"value"`
	Suffix string `json:"suffix"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

type ProcessStep struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var Services = []Service{
	{Slug: "precision-spraying", Title: "Precision Spraying", Icon: "droplets",
		Description: "Advanced drone-based spraying with pinpoint accuracy, reducing chemical usage by up to 50%."},
	{Slug: "pest-control", Title: "Pest Control", Icon: "bug",
		Description: "Targeted pest management solutions that protect crops while preserving beneficial insects."},
	{Slug: "fertilizer-application", Title: "Fertilizer Application", Icon: "sprout",
		Description: "Uniform fertilizer distribution ensuring optimal nutrient delivery across your fields."},
	{Slug: "crop-monitoring", Title: "Crop Monitoring", Icon: "eye",
		Description: "Real-time aerial surveillance to detect issues early and optimize crop health."},
	{Slug: "seed-spreading", Title: "Seed Spreading", Icon: "wheat",
		Description: "Efficient aerial seeding for cover crops and hard-to-reach agricultural areas."},
	{Slug: "field-mapping", Title: "Field Mapping", Icon: "map",
		Description: "Detailed NDVI mapping and analytics to guide your farming decisions."},
}

var Testimonials = []Testimonial{
	{Name: "Rajesh Kumar", Location: "Punjab, India", Rating: 5,
		Text: "XroneTech transformed our farming operations. The drone spraying is incredibly efficient and has reduced our pesticide costs by 40%. Highly recommended!"},
	{Name: "Arun Patel", Location: "Gujarat, India", Rating: 5,
		Text: "Professional team, on-time service, and excellent results. Our cotton yield improved significantly after using their precision spraying services."},
	{Name: "Suresh Reddy", Location: "Telangana, India", Rating: 5,
		Text: "The field mapping service helped us identify problem areas we never knew existed. XroneTech is a game-changer for modern agriculture."},
	{Name: "Vikram Singh", Location: "Haryana, India", Rating: 5,
		Text: "Excellent customer support and follow-up. They truly care about farmer success. Our rice paddy has never looked better."},
}

var Stats = []Stat{
	{Value: 5, Suffix: "+", Label: "Years Experience", Icon: "calendar"},
	{Value: 300, Suffix: "+", Label: "Happy Farmers", Icon: "users"},
	{Value: 50000, Suffix: "+", Label: "Acres Covered", Icon: "map-pin"},
}

var ProcessSteps = []ProcessStep{
	{Number: 1, Title: "Contact Us", Icon: "phone",
		Description: "Reach out via phone, email, or our booking form to discuss your needs."},
	{Number: 2, Title: "Field Inspection", Icon: "clipboard-check",
		Description: "Our team visits your farm to assess the area and create a custom plan."},
	{Number: 3, Title: "Drone Spraying", Icon: "plane",
		Description: "Certified pilots execute precision spraying with real-time monitoring."},
	{Number: 4, Title: "Post-Service Support", Icon: "headphones",
		Description: "Detailed reports and ongoing support to ensure optimal results."},
}
