package core

import "go.mongodb.org/mongo-driver/bson"

// ListFilter 來自 query string 的查詢條件。
// 多個條件同時出現時採 first-match-wins：search > availability > type。
// 用顯式的優先序列表表達，讓政策本身可被測試，而不是埋在巢狀 if 裡。
type ListFilter struct {
	Search       string
	Availability string
	ProductType  string
}

type filterRule struct {
	name  string
	match func(f ListFilter) bool
	build func(f ListFilter) bson.M
}

var filterChain = []filterRule{
	{
		name:  "search",
		match: func(f ListFilter) bool { return f.Search != "" },
		build: func(f ListFilter) bson.M {
			return bson.M{"productName": bson.M{"$regex": f.Search, "$options": "i"}}
		},
	},
	{
		name:  "availability",
		match: func(f ListFilter) bool { return f.Availability != "" },
		build: func(f ListFilter) bson.M {
			return bson.M{"availability": f.Availability}
		},
	},
	{
		name:  "type",
		match: func(f ListFilter) bool { return f.ProductType != "" },
		build: func(f ListFilter) bson.M {
			return bson.M{"productType": f.ProductType}
		},
	},
}

// Resolve 回傳第一個命中的規則名稱與查詢；都沒命中回傳空 bson.M。
// search 命中時跨所有 owner 查詢（沿用原系統行為），其餘條件與 base 合併。
func (f ListFilter) Resolve(base bson.M) (string, bson.M) {
	for _, rule := range filterChain {
		if !rule.match(f) {
			continue
		}
		query := rule.build(f)
		if rule.name != "search" {
			for k, v := range base {
				query[k] = v
			}
		}
		return rule.name, query
	}
	if base == nil {
		return "", bson.M{}
	}
	return "", base
}

// RequestListFilter 請求列表的條件鏈：search > status > type
type RequestListFilter struct {
	Search      string
	Status      string
	ProductType string
}

func (f RequestListFilter) Resolve(base bson.M) (string, bson.M) {
	if f.Search != "" {
		return "search", bson.M{"productName": bson.M{"$regex": f.Search, "$options": "i"}}
	}
	query := bson.M{}
	for k, v := range base {
		query[k] = v
	}
	if f.Status != "" {
		query["status"] = f.Status
		return "status", query
	}
	if f.ProductType != "" {
		query["productType"] = f.ProductType
		return "type", query
	}
	return "", query
}
