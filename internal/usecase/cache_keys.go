package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// Cache keys follow "{operation}:{param-signature}". Parameterized
// listings share a prefix so one mutation can drop every cached page
// of that listing at once.
const (
	videoListPrefix  = "videos:"
	wordSearchPrefix = "search:q:"
	tagSearchPrefix  = "search:tags:"
	userKeyPrefix    = "user:"
	subsKeyPrefix    = "subs:"
	tagListKey       = "tags:all"
)

func videoListKey(uploaderIDs []int64, cursor string, pageSize int) string {
	ids := make([]string, len(uploaderIDs))
	for i, id := range uploaderIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s%s:%s:%d", videoListPrefix, strings.Join(ids, ","), cursor, pageSize)
}

// uploaderListKey covers per-uploader listings, which include
// unpublished videos. The "owner" marker keeps them from colliding
// with public listing pages.
func uploaderListKey(uploaderID int64, cursor string, pageSize int) string {
	return fmt.Sprintf("%sowner:%d:%s:%d", videoListPrefix, uploaderID, cursor, pageSize)
}

func wordSearchKey(query, cursor string, pageSize int) string {
	return fmt.Sprintf("%s%s:%s:%d", wordSearchPrefix, query, cursor, pageSize)
}

func tagSearchKey(tags []string, cursor string, pageSize int) string {
	return fmt.Sprintf("%s%s:%s:%d", tagSearchPrefix, strings.Join(tags, ","), cursor, pageSize)
}

func userKey(telegramID int64) string {
	return userKeyPrefix + strconv.FormatInt(telegramID, 10)
}

func subsKey(telegramID int64) string {
	return subsKeyPrefix + strconv.FormatInt(telegramID, 10)
}
