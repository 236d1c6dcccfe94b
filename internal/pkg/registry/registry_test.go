package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeModule struct {
	name     string
	priority int
	err      error
	calls    *[]string
}

func (m *fakeModule) Name() string  { return m.name }
func (m *fakeModule) Priority() int { return m.priority }
func (m *fakeModule) Init(*ModuleContext) error {
	*m.calls = append(*m.calls, m.name)
	return m.err
}

func withModules(t *testing.T, mods ...Module) {
	saved := moduleRegistry
	moduleRegistry = make(map[string]Module)
	for _, m := range mods {
		Register(m)
	}
	t.Cleanup(func() { moduleRegistry = saved })
}

func TestInitModulesOrder(t *testing.T) {
	var calls []string
	withModules(t,
		&fakeModule{name: "like", priority: 30, calls: &calls},
		&fakeModule{name: "video", priority: 10, calls: &calls},
		&fakeModule{name: "user", priority: 0, calls: &calls},
		&fakeModule{name: "comment", priority: 20, calls: &calls},
		&fakeModule{name: "tweet", priority: 20, calls: &calls},
	)

	assert.NoError(t, InitModules(&ModuleContext{}))
	assert.Equal(t, []string{"user", "video", "comment", "tweet", "like"}, calls)
}

func TestInitModulesStopsOnError(t *testing.T) {
	var calls []string
	withModules(t,
		&fakeModule{name: "user", priority: 0, calls: &calls, err: errors.New("boom")},
		&fakeModule{name: "video", priority: 10, calls: &calls},
	)

	assert.EqualError(t, InitModules(&ModuleContext{}), "boom")
	assert.Equal(t, []string{"user"}, calls)
}
