package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"slot_start_time",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			// Canonical ISO-8601 UTC instant with millisecond precision,
			// e.g. 2025-01-01T10:00:00.000Z. Also the unique booking key.
			"slot_start_time": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
