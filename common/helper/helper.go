package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetTimestamp() int64 {
	return time.Now().Unix()
}

func GetTimestampMilli() int64 {
	return time.Now().UnixMilli()
}

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

func GenRequestID() string {
	return GetTimeString() + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func GetUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func MessageWithRequestId(message string, id string) string {
	if id == "" {
		return message
	}
	return fmt.Sprintf("%s (request id: %s)", message, id)
}

func Interface2String(inter interface{}) string {
	switch inter := inter.(type) {
	case string:
		return inter
	case int:
		return strconv.Itoa(inter)
	case float64:
		return strconv.FormatFloat(inter, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", inter)
}

func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
