// Package related computes related-post suggestions for a single post.
//
// 후보 풀은 호출자가 최신 공개 순(최근 발행이 앞)으로 넘겨야 하며,
// 여기서는 순서를 새로 만들지 않고 그 순서를 그대로 신뢰한다.
package related

import (
	"sort"
	"strings"
)

// Label describes which phase produced the final selection.
type Label string

const (
	LabelTags     Label = "tags"
	LabelCategory Label = "category"
	LabelRecent   Label = "recent"
)

// Item is the minimal view of a candidate post the ranker needs.
// Live database handles never reach this package.
type Item struct {
	ID       string
	Category string
	Tags     []string
}

// Pick selects up to limit related posts for the post currentID.
//
// Selection runs in three phases:
//  1. "tags": candidates sharing at least one tag (case-insensitive key
//     match), ordered by shared-tag count descending. When fewer than limit
//     match, the remainder is topped up with same-category candidates in
//     pool order, still labeled "tags".
//  2. "category": same-category candidates in pool order.
//  3. "recent": the head of the pool as-is.
//
// The current post is never part of the result. Returned IDs preserve the
// phase ordering described above.
func Pick(currentID, category string, tags []string, pool []Item, limit int) ([]string, Label) {
	if limit < 0 {
		limit = 0
	}

	candidates := make([]Item, 0, len(pool))
	for _, it := range pool {
		if it.ID == currentID {
			continue
		}
		candidates = append(candidates, it)
	}

	if len(tags) > 0 {
		if ids, ok := pickByTags(category, tags, candidates, limit); ok {
			return ids, LabelTags
		}
	}

	if ids := pickByCategory(category, candidates, limit); len(ids) > 0 {
		return ids, LabelCategory
	}

	ids := make([]string, 0, limit)
	for _, it := range candidates {
		if len(ids) == limit {
			break
		}
		ids = append(ids, it.ID)
	}
	return ids, LabelRecent
}

// pickByTags returns the tag-phase selection. ok 가 false 면 태그가 하나도
// 겹치는 후보가 없다는 뜻이고, 호출자는 카테고리 단계로 넘어간다.
func pickByTags(category string, tags []string, candidates []Item, limit int) ([]string, bool) {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = true
	}

	type scored struct {
		id     string
		shared int
	}
	var matched []scored
	for _, it := range candidates {
		shared := 0
		seen := make(map[string]bool, len(it.Tags))
		for _, t := range it.Tags {
			key := strings.ToLower(t)
			if want[key] && !seen[key] {
				seen[key] = true
				shared++
			}
		}
		if shared > 0 {
			matched = append(matched, scored{id: it.ID, shared: shared})
		}
	}
	if len(matched) == 0 {
		return nil, false
	}

	// 동점은 풀의 원래 상대 순서를 유지한다(안정 정렬).
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].shared > matched[j].shared
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}

	ids := make([]string, 0, limit)
	picked := make(map[string]bool, limit)
	for _, m := range matched {
		ids = append(ids, m.id)
		picked[m.id] = true
	}

	// limit 에 못 미치면 같은 카테고리 후보로 채운다. 이미 뽑힌 글은 빼고
	// 풀 순서를 보존한다.
	for _, it := range candidates {
		if len(ids) == limit {
			break
		}
		if picked[it.ID] || it.Category != category {
			continue
		}
		ids = append(ids, it.ID)
		picked[it.ID] = true
	}
	return ids, true
}

func pickByCategory(category string, candidates []Item, limit int) []string {
	var ids []string
	for _, it := range candidates {
		if len(ids) == limit {
			break
		}
		if it.Category == category {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
