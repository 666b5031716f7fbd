package validators

import "go.mongodb.org/mongo-driver/bson"

const (
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	phonePattern = `^\+[1-9][0-9]{6,14}$`
	clockPattern = `^([01][0-9]|2[0-3]):[0-5][0-9]$`
)

var (
	intTypes    = []string{"int", "long"}
	numberTypes = []string{"double", "int", "long", "decimal"}
)

var ParentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"password_hash",
			"contact",
			"address",
			"favorites",
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

			"favorites": bson.M{
				"bsonType":    "array",
				"uniqueItems": true,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 24,
					"maxLength": 24,
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
