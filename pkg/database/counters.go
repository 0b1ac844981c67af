package database

// 计数器名称，与快照中的集合名一致
const (
	kindOrganizations = "organizations"
	kindUsers         = "users"
	kindProjects      = "projects"
	kindChapters      = "chapters"
	kindStoryboards   = "storyboards"
	kindScenes        = "scenes"
	kindCharacters    = "characters"
	kindAssets        = "assets"
	kindTasks         = "tasks"
	kindNotifications = "notifications"
	kindPlans         = "plans"
	kindSubscriptions = "subscriptions"
	kindAPIKeys       = "api_keys"
)

// counters hands out per-kind ids. Each starts at max(existing)+1 and only grows,
// so ids of deleted records are never reused. Callers hold the store lock.
type counters map[string]int

func newCounters(s *state) counters {
	c := counters{}
	c.seed(kindOrganizations, keysOf(s.organizations))
	c.seed(kindUsers, keysOf(s.users))
	c.seed(kindProjects, keysOf(s.projects))
	c.seed(kindChapters, keysOf(s.chapters))
	c.seed(kindStoryboards, keysOf(s.storyboards))
	c.seed(kindScenes, keysOf(s.scenes))
	c.seed(kindCharacters, keysOf(s.characters))
	c.seed(kindAssets, keysOf(s.assets))
	c.seed(kindTasks, keysOf(s.tasks))
	c.seed(kindNotifications, keysOf(s.notifications))
	c.seed(kindPlans, keysOf(s.plans))
	c.seed(kindSubscriptions, keysOf(s.subscriptions))
	c.seed(kindAPIKeys, keysOf(s.apiKeys))
	return c
}

func (c counters) seed(kind string, ids []int) {
	next := 1
	for _, id := range ids {
		if id+1 > next {
			next = id + 1
		}
	}
	c[kind] = next
}

// raise keeps every counter at least as high as in prev, so a reload never hands out
// an id that was allocated earlier in this process.
func (c counters) raise(prev counters) {
	for kind, v := range prev {
		if v > c[kind] {
			c[kind] = v
		}
	}
}

// next returns the current value of the kind's counter and advances it.
func (c counters) next(kind string) int {
	v, ok := c[kind]
	if !ok {
		v = 1
	}
	c[kind] = v + 1
	return v
}

func keysOf[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
