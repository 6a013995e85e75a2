package mongodb

import (
	"testing"

	"github.com/secondchance/catalog-service/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildItemQuery_EmptyFilterMatchesEverything(t *testing.T) {
	query := buildItemQuery(domain.Filter{})
	assert.Equal(t, bson.M{}, query)
}

func TestBuildItemQuery_NameIsCaseInsensitiveSubstring(t *testing.T) {
	query := buildItemQuery(domain.Filter{Name: "bike"})
	assert.Equal(t, bson.M{
		"name": bson.M{"$regex": "bike", "$options": "i"},
	}, query)
}

func TestBuildItemQuery_ExactMatchFields(t *testing.T) {
	query := buildItemQuery(domain.Filter{Category: "Toys", Condition: "New"})
	assert.Equal(t, bson.M{
		"category":  "Toys",
		"condition": "New",
	}, query)
}

func TestBuildItemQuery_AgeBoundIsInclusiveUpperBound(t *testing.T) {
	bound := 2.0
	query := buildItemQuery(domain.Filter{MaxAgeYears: &bound})
	assert.Equal(t, bson.M{
		"age_years": bson.M{"$lte": 2.0},
	}, query)
}

func TestBuildItemQuery_CriteriaCompose(t *testing.T) {
	bound := 1.5
	query := buildItemQuery(domain.Filter{
		Name:        "lamp",
		Category:    "Furniture",
		Condition:   "Used",
		MaxAgeYears: &bound,
	})
	assert.Len(t, query, 4)
	assert.Equal(t, "Furniture", query["category"])
	assert.Equal(t, bson.M{"$lte": 1.5}, query["age_years"])
}
