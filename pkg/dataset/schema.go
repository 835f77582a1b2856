package dataset

// VenueSchema is the JSON Schema every venue dataset file is validated
// against before decoding. Keeping it strict means a malformed scrape export
// is rejected at load time instead of producing half-filled venues.
const VenueSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "location"],
    "additionalProperties": true,
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "address": {"type": "string"},
      "location": {
        "type": "object",
        "required": ["lat", "lon"],
        "properties": {
          "lat": {"type": "number", "minimum": -90, "maximum": 90},
          "lon": {"type": "number", "minimum": -180, "maximum": 180}
        }
      },
      "cuisineTags": {
        "type": "array",
        "items": {"type": "string", "minLength": 1}
      },
      "priceTier": {"type": "string", "enum": ["low", "mid", "high"]},
      "openHours": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["day", "from", "to"],
          "properties": {
            "day": {"type": "string", "enum": ["Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"]},
            "from": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
            "to": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"}
          }
        }
      },
      "rating": {"type": "number", "minimum": 0, "maximum": 5},
      "reviewCount": {"type": "integer", "minimum": 0}
    }
  }
}`
