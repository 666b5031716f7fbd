package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"babysitter_id",
			"parent_id",
			"date",
			"time",
			"duration",
			"total",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"babysitter_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"parent_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  clockPattern,
			},

			"duration": bson.M{
				"bsonType": intTypes,
				"minimum":  1,
				"maximum":  12,
			},

			"total": bson.M{
				"bsonType": numberTypes,
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
					"completed",
				},
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
