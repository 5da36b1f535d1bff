package showroom

import (
	"encoding/json"
	"strconv"
)

// 上游同一逻辑字段存在多种嵌套写法，这里提供一组按优先级顺序探测的
// 类型化取值函数，网络层之外也能单独测试。

// asMap v是否为JSON对象
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asList v是否为JSON数组
func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// asInt64 宽松取整数：json.Number、float64、数字字符串均接受
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			// "1.0" 这类写法退回浮点
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// asString 取字符串
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asBool 宽松取布尔：上游混用 true/false 与 0/1
func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	default:
		if i, ok := asInt64(v); ok {
			return i != 0, true
		}
		return false, false
	}
}

// firstField 按顺序探测多个键，返回第一个存在的值
func firstField(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// extractList 从解码结果中取出条目列表：
// 顶层本身是数组时直接返回，是对象时按keys顺序探测
func extractList(body any, keys ...string) ([]any, bool) {
	if l, ok := asList(body); ok {
		return l, true
	}
	m, ok := asMap(body)
	if !ok {
		return nil, false
	}
	v, ok := firstField(m, keys...)
	if !ok {
		return nil, false
	}
	return asList(v)
}

// extractNestedMap 按路径逐层下探取对象
func extractNestedMap(m map[string]any, path ...string) (map[string]any, bool) {
	cur := m
	for _, k := range path {
		v, ok := cur[k]
		if !ok {
			return nil, false
		}
		cur, ok = asMap(v)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
