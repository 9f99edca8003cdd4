package service

import (
	"reflect"
	"testing"

	"github.com/ryusei20030204-code/RT/internal/model"
)

func sampleLabs() []model.Lab {
	return []model.Lab{
		{University: "東京大学", Name: "画像処理研究室", Keywords: "コンピュータビジョン 深層学習", ExamSubjects: "数学 英語"},
		{University: "東京大学", Name: "自然言語処理研究室", Keywords: "NLP 機械学習", ExamSubjects: "数学 プログラミング"},
		{University: "京都大学", Name: "ロボティクス研究室", Keywords: "制御 ROS", ExamSubjects: "物理 数学"},
		{University: "大阪大学", Name: "データベース研究室", Keywords: "分散システム", ExamSubjects: ""},
	}
}

func labNames(labs []model.Lab) []string {
	names := make([]string, 0, len(labs))
	for _, lab := range labs {
		names = append(names, lab.Name)
	}
	return names
}

func TestFilterLabs_ByUniversity(t *testing.T) {
	labs := sampleLabs()

	got := FilterLabs(labs, []string{"京都大学"}, "")
	if want := []string{"ロボティクス研究室"}; !reflect.DeepEqual(labNames(got), want) {
		t.Errorf("大学过滤结果错误: got %v, want %v", labNames(got), want)
	}

	// 空集合：零条命中
	got = FilterLabs(labs, []string{}, "")
	if len(got) != 0 {
		t.Errorf("空大学集合应返回零条记录, got %d 条", len(got))
	}
}

func TestFilterLabs_KeywordTerms(t *testing.T) {
	labs := sampleLabs()
	all := []string{"東京大学", "京都大学", "大阪大学"}

	// 单词条：キーワード字段命中
	got := FilterLabs(labs, all, "深層学習")
	if want := []string{"画像処理研究室"}; !reflect.DeepEqual(labNames(got), want) {
		t.Errorf("单词条过滤结果错误: got %v, want %v", labNames(got), want)
	}

	// 多词条 AND：各词条可命中不同字段（数学→試験科目, NLP→キーワード）
	got = FilterLabs(labs, all, "数学 NLP")
	if want := []string{"自然言語処理研究室"}; !reflect.DeepEqual(labNames(got), want) {
		t.Errorf("多词条 AND 过滤结果错误: got %v, want %v", labNames(got), want)
	}

	// 大小写不敏感
	got = FilterLabs(labs, all, "nlp")
	if len(got) != 1 || got[0].Name != "自然言語処理研究室" {
		t.Errorf("关键词匹配应大小写不敏感, got %v", labNames(got))
	}

	// 未命中任何记录
	got = FilterLabs(labs, all, "量子計算")
	if len(got) != 0 {
		t.Errorf("无命中时应返回空列表, got %v", labNames(got))
	}
}

func TestFilterLabs_EmptyKeywordKeepsAll(t *testing.T) {
	labs := sampleLabs()
	all := []string{"東京大学", "京都大学", "大阪大学"}

	// 空白关键词不过滤，且保持原有相对顺序
	got := FilterLabs(labs, all, "   ")
	if !reflect.DeepEqual(labNames(got), labNames(labs)) {
		t.Errorf("空白关键词应保留全部记录并保序: got %v", labNames(got))
	}
}

func TestFilterLabs_MissingExamSubjects(t *testing.T) {
	labs := sampleLabs()
	all := []string{"東京大学", "京都大学", "大阪大学"}

	// 試験科目为空的记录仍可通过其他字段命中
	got := FilterLabs(labs, all, "分散")
	if want := []string{"データベース研究室"}; !reflect.DeepEqual(labNames(got), want) {
		t.Errorf("試験科目缺失不应影响其他字段匹配: got %v, want %v", labNames(got), want)
	}
}

func TestDistinctUniversities(t *testing.T) {
	labs := sampleLabs()

	got := distinctUniversities(labs)
	if want := []string{"東京大学", "京都大学", "大阪大学"}; !reflect.DeepEqual(got, want) {
		t.Errorf("大学去重列表应按首次出现顺序: got %v, want %v", got, want)
	}

	if got := distinctUniversities(nil); len(got) != 0 {
		t.Errorf("空记录应返回空大学列表, got %v", got)
	}
}
