package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"babysitter_id",
			"parent_id",
			"rating",
			"comment",
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

			"rating": bson.M{
				"bsonType": intTypes,
				"minimum":  1,
				"maximum":  5,
			},

			"comment": bson.M{
				"bsonType":  "string",
				"minLength": 10,
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
