package model

// ResponseLog 出站稽核：誰（requester_mail）在哪個請求上拿到了什麼結果。
// request_id 與 RequestLog 的同名欄位對齊，fluentd 端靠它串接進出站。
type ResponseLog struct {
	RequestID     string `bson:"request_id" json:"request_id"`
	RequesterMail string `bson:"requester_mail,omitempty" json:"requester_mail,omitempty"`
	ProjectName   string `bson:"project_name,omitempty" json:"project_name,omitempty"`
	Code          int    `bson:"code" json:"code"`
	StatusCode    int    `bson:"status_code" json:"status_code"`
	Body          string `bson:"body,omitempty" json:"body,omitempty"`
	Error         string `bson:"error,omitempty" json:"error,omitempty"`
	Version       string `bson:"version,omitempty" json:"version,omitempty"`
	ResponseTS    string `bson:"response_ts" json:"response_ts"`
	LoggedAt      string `bson:"logged_at" json:"logged_at"`
}
