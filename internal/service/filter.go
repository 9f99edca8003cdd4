package service

import (
	"strings"

	"github.com/ryusei20030204-code/RT/internal/model"
)

// FilterLabs 检索过滤引擎
//
// 1. 大学过滤：仅保留 University 属于 universities 的记录（空集合保留零条，
//    调用方应将"未指定"默认为全部大学）
// 2. 关键词过滤：按空白拆分为多个词条，逐词条收窄；每个词条须在
//    {キーワード, 研究室名, 試験科目} 中至少一个字段上大小写不敏感地
//    子串匹配（各词条可命中不同字段，AND 组合）
// 3. 稳定过滤：幸存记录保持原有相对顺序，不重新排序
func FilterLabs(labs []model.Lab, universities []string, keyword string) []model.Lab {
	univSet := make(map[string]struct{}, len(universities))
	for _, u := range universities {
		univSet[u] = struct{}{}
	}

	result := make([]model.Lab, 0, len(labs))
	for _, lab := range labs {
		if _, ok := univSet[lab.University]; ok {
			result = append(result, lab)
		}
	}

	for _, term := range strings.Fields(keyword) {
		lower := strings.ToLower(term)
		narrowed := make([]model.Lab, 0, len(result))
		for _, lab := range result {
			if labMatchesTerm(&lab, lower) {
				narrowed = append(narrowed, lab)
			}
		}
		result = narrowed
	}

	return result
}

// labMatchesTerm 单个词条是否命中研究室的任一可检索字段
// 試験科目在某些后端可能缺失（空串），空串上的匹配自然失败，不报错
func labMatchesTerm(lab *model.Lab, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(lab.Keywords), lowerTerm) ||
		strings.Contains(strings.ToLower(lab.Name), lowerTerm) ||
		strings.Contains(strings.ToLower(lab.ExamSubjects), lowerTerm)
}

// distinctUniversities 按首次出现顺序提取去重后的大学名列表
func distinctUniversities(labs []model.Lab) []string {
	seen := make(map[string]struct{}, len(labs))
	result := make([]string, 0)
	for _, lab := range labs {
		if _, ok := seen[lab.University]; ok {
			continue
		}
		seen[lab.University] = struct{}{}
		result = append(result, lab.University)
	}
	return result
}
