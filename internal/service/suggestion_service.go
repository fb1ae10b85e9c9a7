package service

import (
	"math"
	"sort"
	"strings"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"
)

const (
	suggestionThreshold = 0.40
	suggestionLimit     = 5
)

// SuggestionService 好友推荐：对用户的技能 + 位置文本做 TF-IDF，
// 与当前用户余弦相似度达到阈值的前几名作为推荐
type SuggestionService struct {
	UserRepo   *repository.UserRepository
	FriendRepo *repository.FriendshipRepository
}

func NewSuggestionService(userRepo *repository.UserRepository, friendRepo *repository.FriendshipRepository) *SuggestionService {
	return &SuggestionService{UserRepo: userRepo, FriendRepo: friendRepo}
}

// Suggestion 推荐结果项
type Suggestion struct {
	ID         string  `json:"id"`
	FullName   string  `json:"fullName"`
	ProfilePic string  `json:"profilePic"`
	Location   string  `json:"location"`
	Skills     string  `json:"skills"`
	Score      float64 `json:"score"`
}

func profileTerms(u *model.User) []string {
	var terms []string
	terms = append(terms, util.SplitTags(u.Skills)...)
	for _, w := range strings.Fields(strings.ToLower(u.Location)) {
		terms = append(terms, w)
	}
	return terms
}

// Suggest 为用户计算好友推荐。自己资料为空、或没有达到阈值的
// 候选时返回空列表。
func (s *SuggestionService) Suggest(userID string) ([]Suggestion, error) {
	users, err := s.UserRepo.ListAll()
	if err != nil {
		return nil, err
	}

	friendIDs, err := s.FriendRepo.GetFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	excluded := map[string]bool{userID: true}
	for _, id := range friendIDs {
		excluded[id] = true
	}

	// 文档集合：全部有资料文本的用户
	docs := make(map[string][]string, len(users))
	var self *model.User
	for i := range users {
		u := &users[i]
		if u.ID == userID {
			self = u
		}
		terms := profileTerms(u)
		if len(terms) > 0 {
			docs[u.ID] = terms
		}
	}
	if self == nil || len(docs[userID]) == 0 {
		return []Suggestion{}, nil
	}

	idf := inverseDocFreq(docs)
	selfVec := tfidfVector(docs[userID], idf)

	type scored struct {
		user  *model.User
		score float64
	}
	var candidates []scored
	for i := range users {
		u := &users[i]
		if excluded[u.ID] {
			continue
		}
		terms, ok := docs[u.ID]
		if !ok {
			continue
		}
		score := cosine(selfVec, tfidfVector(terms, idf))
		if score >= suggestionThreshold {
			candidates = append(candidates, scored{user: u, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > suggestionLimit {
		candidates = candidates[:suggestionLimit]
	}

	result := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, Suggestion{
			ID:         c.user.ID,
			FullName:   c.user.FullName,
			ProfilePic: util.FileURL(c.user.ProfilePic),
			Location:   c.user.Location,
			Skills:     c.user.Skills,
			Score:      math.Round(c.score*100) / 100,
		})
	}
	return result, nil
}

func inverseDocFreq(docs map[string][]string) map[string]float64 {
	df := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}
	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for t, c := range df {
		// 平滑，保证出现在全部文档里的词权重不归零
		idf[t] = math.Log(n/float64(c)) + 1
	}
	return idf
}

func tfidfVector(terms []string, idf map[string]float64) map[string]float64 {
	tf := make(map[string]float64)
	for _, t := range terms {
		tf[t]++
	}
	vec := make(map[string]float64, len(tf))
	total := float64(len(terms))
	for t, c := range tf {
		vec[t] = (c / total) * idf[t]
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for t, v := range a {
		normA += v * v
		if w, ok := b[t]; ok {
			dot += v * w
		}
	}
	for _, w := range b {
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
