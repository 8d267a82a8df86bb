package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/treesdao/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableItem struct {
		Seller  *string `bson:"seller,omitempty"`
		Price   *string `bson:"price,omitempty"`
		Owner   string  `bson:"owner"`
		ForSale *bool   `bson:"forSale,omitempty"`
	}

	patchable := &PatchableItem{}
	patchable.Seller = ptr.String("")
	patchable.Price = ptr.String("15000000000000000000")
	patchable.Owner = "0xabc"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"seller": "",
			"price":  "15000000000000000000",
			// field forSale is nil, so ignore
			"owner": "0xabc",
		},
		updater,
	)
}
