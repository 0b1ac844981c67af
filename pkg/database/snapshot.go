package database

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"aigc-studio-mock-api/pkg/models"
)

// Snapshot 是完整数据集的 JSON 文档形式，既是种子文件格式也是持久化格式
type Snapshot struct {
	Organizations  []models.Organization  `json:"organizations"`
	Users          []models.User          `json:"users"`
	Projects       []models.Project       `json:"projects"`
	Chapters       []models.Chapter       `json:"chapters"`
	Storyboards    []models.Storyboard    `json:"storyboards"`
	Scenes         []models.Scene         `json:"scenes"`
	Characters     []models.Character     `json:"characters"`
	Assets         []models.Asset         `json:"assets"`
	Tasks          []models.Task          `json:"tasks"`
	Notifications  []models.Notification  `json:"notifications"`
	Plans          []models.Plan          `json:"plans"`
	Subscriptions  []models.Subscription  `json:"subscriptions"`
	Payments       []models.Payment       `json:"payments"`
	APIKeys        []models.APIKey        `json:"api_keys"`
	Voices         []models.Voice         `json:"voices"`
	StorageObjects []models.StorageObject `json:"storage_objects"`
	Tokens         map[string]int         `json:"tokens"`
}

// ReadSnapshotFile 读取快照文件；文件不存在或格式错误时返回错误
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mock data file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read mock data file: %w", err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot parses a snapshot document. Missing collections decode as empty.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse mock data: %w", err)
	}
	return &snap, nil
}

// state is the live, keyed form of a Snapshot.
type state struct {
	organizations  map[int]models.Organization
	users          map[int]models.User
	projects       map[int]models.Project
	chapters       map[int]models.Chapter
	storyboards    map[int]models.Storyboard
	scenes         map[int]models.Scene
	characters     map[int]models.Character
	assets         map[int]models.Asset
	tasks          map[int]models.Task
	notifications  map[int]models.Notification
	plans          map[int]models.Plan
	subscriptions  map[int]models.Subscription
	payments       map[string]models.Payment
	apiKeys        map[int]models.APIKey
	voices         []models.Voice
	storageObjects []models.StorageObject
	tokens         map[string]int
}

func newState(snap *Snapshot) *state {
	s := &state{
		organizations:  index(snap.Organizations, func(v models.Organization) int { return v.ID }),
		users:          index(snap.Users, func(v models.User) int { return v.ID }),
		projects:       index(snap.Projects, func(v models.Project) int { return v.ID }),
		chapters:       index(snap.Chapters, func(v models.Chapter) int { return v.ID }),
		storyboards:    index(snap.Storyboards, func(v models.Storyboard) int { return v.ID }),
		scenes:         index(snap.Scenes, func(v models.Scene) int { return v.ID }),
		characters:     index(snap.Characters, func(v models.Character) int { return v.ID }),
		assets:         index(snap.Assets, func(v models.Asset) int { return v.ID }),
		tasks:          index(snap.Tasks, func(v models.Task) int { return v.ID }),
		notifications:  index(snap.Notifications, func(v models.Notification) int { return v.ID }),
		plans:          index(snap.Plans, func(v models.Plan) int { return v.ID }),
		subscriptions:  index(snap.Subscriptions, func(v models.Subscription) int { return v.ID }),
		apiKeys:        index(snap.APIKeys, func(v models.APIKey) int { return v.ID }),
		payments:       make(map[string]models.Payment, len(snap.Payments)),
		voices:         append([]models.Voice{}, snap.Voices...),
		storageObjects: append([]models.StorageObject{}, snap.StorageObjects...),
		tokens:         make(map[string]int, len(snap.Tokens)),
	}
	for _, p := range snap.Payments {
		s.payments[p.OrderID] = p
	}
	for token, userID := range snap.Tokens {
		s.tokens[token] = userID
	}
	return s
}

// snapshot serializes the state with every keyed collection ordered by id.
func (s *state) snapshot() *Snapshot {
	snap := &Snapshot{
		Organizations:  sortedValues(s.organizations),
		Users:          sortedValues(s.users),
		Projects:       sortedValues(s.projects),
		Chapters:       sortedValues(s.chapters),
		Storyboards:    sortedValues(s.storyboards),
		Scenes:         sortedValues(s.scenes),
		Characters:     sortedValues(s.characters),
		Assets:         sortedValues(s.assets),
		Tasks:          sortedValues(s.tasks),
		Notifications:  sortedValues(s.notifications),
		Plans:          sortedValues(s.plans),
		Subscriptions:  sortedValues(s.subscriptions),
		APIKeys:        sortedValues(s.apiKeys),
		Payments:       make([]models.Payment, 0, len(s.payments)),
		Voices:         append([]models.Voice{}, s.voices...),
		StorageObjects: append([]models.StorageObject{}, s.storageObjects...),
		Tokens:         make(map[string]int, len(s.tokens)),
	}
	for _, p := range s.payments {
		snap.Payments = append(snap.Payments, p)
	}
	sort.Slice(snap.Payments, func(i, j int) bool {
		if snap.Payments[i].CreatedAt.Equal(snap.Payments[j].CreatedAt) {
			return snap.Payments[i].OrderID < snap.Payments[j].OrderID
		}
		return snap.Payments[i].CreatedAt.Before(snap.Payments[j].CreatedAt)
	})
	for token, userID := range s.tokens {
		snap.Tokens[token] = userID
	}
	return snap
}

func index[V any](items []V, id func(V) int) map[int]V {
	m := make(map[int]V, len(items))
	for _, item := range items {
		m[id(item)] = item
	}
	return m
}

func sortedValues[V any](m map[int]V) []V {
	ids := keysOf(m)
	sort.Ints(ids)
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
