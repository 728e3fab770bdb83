package validation

const locationRequired = "Location is required"

// messages is keyed by "<field>.<tag>".
var messages = map[string]string{
	"fullName.min": "Name must be at least 2 characters",
	"fullName.max": "Name is too long",
	"name.min":     "Name must be at least 2 characters",
	"name.max":     "Name is too long",

	"phone.phone": "Please enter a valid phone number",

	"email.required": "Please enter a valid email",
	"email.email":    "Please enter a valid email",

	"acresSpray.required": "Please select acres to spray",
	"acresSpray.oneof":    "Please select acres to spray",

	"preferredDate.required": "Please select a preferred date",
	"preferredDate.notpast":  "Date cannot be in the past",

	"pincode.pincode": "Pincode must be 6 digits",

	"latitude.required":  locationRequired,
	"longitude.required": locationRequired,
	"latitude.min":       "Latitude must be between -90 and 90",
	"latitude.max":       "Latitude must be between -90 and 90",
	"longitude.min":      "Longitude must be between -180 and 180",
	"longitude.max":      "Longitude must be between -180 and 180",

	"cropType.required": "Please select a crop",
	"cropType.oneof":    "Please select a crop",

	"landArea.required": "Please enter the land area",
	"landArea.landarea": "Land area must be more than 0.1 and at most 10000 acres",

	"address.required": "Please enter your farm address",
	"address.min":      "Please enter your farm address",
	"address.max":      "Address is too long",

	"message.min":   "Message must be at least 10 characters",
	"message.max":   "Message is too long",
	"message.clean": "Message contains words that are not allowed",
}

func message(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if tag == "required" {
		return "This field is required"
	}
	return "Invalid value"
}
