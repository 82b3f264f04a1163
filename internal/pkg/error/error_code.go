package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY    = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS  = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_HEADERS = 40002 // 400 - 無效的請求標頭

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED       = 40100 // 401 - 缺少憑證
	INVALID_CREDENTIAL = 40101 // 401 - 憑證無效或過期
	FORBIDDEN          = 40301 // 403 - 角色權限不足
	FORBIDDEN_SCOPE    = 40302 // 403 - 只能存取自己的資源

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到

	// 40900 ~ 40999: 狀態衝突 (409 系列)
	DUPLICATE_REGISTRATION = 40900 // 409 - email 已註冊
	INVENTORY_EXHAUSTED    = 40901 // 409 - 庫存已為 0，不可再扣
	INVALID_TRANSITION     = 40902 // 409 - 不允許的生命週期轉移

	// 42900 ~ 42999: 流量限制錯誤 (429 系列)
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 速率限制超過

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停 (維護模式)

	// 50200 ~ 50499: 外部請求錯誤 (502 504 系列)
	EXTERNAL_REQUEST_ERROR         = 50200 // 502 - 外部 API 請求錯誤
	EXTERNAL_RESPONSE_FORMAT_ERROR = 50201 // 502 - 外部 API 回應格式錯誤
	GATEWAY_TIMEOUT                = 50400 // 504 - 外部 API 超時
)
