package assetX

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gitee.com/hgg_test/sign_res/logx"
)

// GetWebContent 请求 sign_id 登记的 http(s) 地址，返回响应正文
//   - 超时由 Config.HTTPTimeout 控制，不重试
//   - 非 2xx 视为失败，成功的结果按 "web:<sign_id>" 进入同一个 LRU
func (r *Resolver) GetWebContent(ctx context.Context, signId string) (string, error) {
	id, err := canonicalId(signId)
	if err != nil {
		return "", err
	}
	key := KindWeb.String() + ":" + id
	if res, ok := r.cache.Get(key); ok {
		r.metrics.Hit(metricsName)
		return res.Web, nil
	}
	r.metrics.Miss(metricsName)

	_, raw, err := r.rawValue(id)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || (!strings.EqualFold(u.Scheme, "http") && !strings.EqualFold(u.Scheme, "https")) {
		return "", fmt.Errorf("%w: sign_id=%s 不是 http(s) 地址 %q", ErrUnsupportedFormat, id, raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.l.Error("请求网络资源失败", logx.SignId(id), logx.String("url", raw), logx.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("GET %s: %s", raw, resp.Status)
		r.l.Error("网络资源响应异常", logx.SignId(id), logx.Int("status", resp.StatusCode))
		return "", err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWebContentBytes))
	if err != nil {
		return "", err
	}
	content := string(body)
	r.insert(key, Resource{Kind: KindWeb, Web: content})
	return content, nil
}
