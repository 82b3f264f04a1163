package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestListFilterFirstMatchWins(t *testing.T) {
	base := bson.M{"email": "boss@corp.io"}

	tests := []struct {
		name      string
		filter    ListFilter
		wantRule  string
		wantQuery bson.M
	}{
		{
			name:      "no filter keeps base scope",
			filter:    ListFilter{},
			wantRule:  "",
			wantQuery: bson.M{"email": "boss@corp.io"},
		},
		{
			name:     "search wins over everything and ignores base",
			filter:   ListFilter{Search: "mac", Availability: "available", ProductType: "returnable"},
			wantRule: "search",
			wantQuery: bson.M{
				"productName": bson.M{"$regex": "mac", "$options": "i"},
			},
		},
		{
			name:      "availability wins over type and merges base",
			filter:    ListFilter{Availability: "available", ProductType: "returnable"},
			wantRule:  "availability",
			wantQuery: bson.M{"email": "boss@corp.io", "availability": "available"},
		},
		{
			name:      "type alone merges base",
			filter:    ListFilter{ProductType: "returnable"},
			wantRule:  "type",
			wantQuery: bson.M{"email": "boss@corp.io", "productType": "returnable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, query := tt.filter.Resolve(base)
			assert.Equal(t, tt.wantRule, rule)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

func TestListFilterNilBase(t *testing.T) {
	rule, query := ListFilter{}.Resolve(nil)
	assert.Empty(t, rule)
	assert.Equal(t, bson.M{}, query)
}

func TestRequestListFilterChain(t *testing.T) {
	base := bson.M{"requesterMail": "amy@corp.io"}

	rule, query := RequestListFilter{Search: "mac", Status: "pending", ProductType: "returnable"}.Resolve(base)
	assert.Equal(t, "search", rule)
	assert.Equal(t, bson.M{"productName": bson.M{"$regex": "mac", "$options": "i"}}, query)

	rule, query = RequestListFilter{Status: "pending", ProductType: "returnable"}.Resolve(base)
	assert.Equal(t, "status", rule)
	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io", "status": "pending"}, query)

	rule, query = RequestListFilter{ProductType: "returnable"}.Resolve(base)
	assert.Equal(t, "type", rule)
	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io", "productType": "returnable"}, query)

	rule, query = RequestListFilter{}.Resolve(base)
	assert.Empty(t, rule)
	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io"}, query)
}

func TestRequestListFilterDoesNotMutateBase(t *testing.T) {
	base := bson.M{"requesterMail": "amy@corp.io"}
	_, _ = RequestListFilter{Status: "pending"}.Resolve(base)
	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io"}, base)
}
