package core

// Role 封閉列舉：授權時解析一次，之後不再比對字串
type Role string

const (
	RoleManager  Role = "manager"  // 團隊擁有者，可異動庫存與審批
	RoleEmployee Role = "employee" // 一般員工，只能操作自己的請求
)

// TeamNone 表示尚未被任何 manager 收編
const TeamNone = "none"

// RequestStatus 請求生命週期狀態
// pending -> approved -> returned；pending 可被 requester 撤回
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusReturned RequestStatus = "returned"
)

// Availability 資產供應狀態
type Availability string

const (
	AvailabilityAvailable  Availability = "available"
	AvailabilityOutOfStock Availability = "out-of-stock"
)

// ProductType
type ProductType string

const (
	ProductTypeReturnable    ProductType = "returnable"
	ProductTypeNonReturnable ProductType = "non-returnable"
)

const (
	// LowStockThreshold 低於此數量視為低庫存
	LowStockThreshold = 10
	// MostRequestedLimit 熱門請求排行榜長度
	MostRequestedLimit = 4
	// PendingQueueLimit 管理端待審批儀表板的分頁上限
	PendingQueueLimit = 5
)
