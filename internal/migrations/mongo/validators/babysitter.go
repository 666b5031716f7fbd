package validators

import "go.mongodb.org/mongo-driver/bson"

var BabysitterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"password_hash",
			"contact",
			"address",
			"hourly_rate",
			"experience",
			"available",
			"rating",
			"total_reviews",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  emailPattern,
			},

			"password_hash": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"age": bson.M{
				"bsonType": intTypes,
				"minimum":  16,
				"maximum":  120,
			},

			"contact": bson.M{
				"bsonType": "string",
				"pattern":  phonePattern,
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"hourly_rate": bson.M{
				"bsonType":         numberTypes,
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"experience": bson.M{
				"bsonType": intTypes,
				"minimum":  0,
			},

			"skills": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"languages": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"available": bson.M{
				"bsonType": "bool",
			},

			"availability": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"day", "start_time", "end_time"},
					"properties": bson.M{
						"day": bson.M{
							"enum": []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
						},
						"start_time": bson.M{"bsonType": "string", "pattern": clockPattern},
						"end_time":   bson.M{"bsonType": "string", "pattern": clockPattern},
					},
				},
			},

			"bio": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"rating": bson.M{
				"bsonType": numberTypes,
				"minimum":  0,
				"maximum":  5,
			},

			"total_reviews": bson.M{
				"bsonType": intTypes,
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
