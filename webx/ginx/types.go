package ginx

// Result 统一响应体
//   - Code: 与 http 状态码一致，成功为 200
type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}
