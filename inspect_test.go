/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package inspect

import (
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/builder"
	"dirpx.dev/inspect/config"
	"dirpx.dev/inspect/descriptor"
)

// resetWithBuilder installs a clean snapshot built by b. Pins are cleared
// because reg and res are nil.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
}

// resetDefault restores the default builder and configuration.
func resetDefault(tb testing.TB) {
	tb.Helper()
	resetWithBuilder(tb, builder.New(), config.DefaultConfig())
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[reflect.Type]*descriptor.Declaration
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[reflect.Type]*descriptor.Declaration)}
}

func (m *mockRegistry) Register(d *descriptor.Declaration) error {
	m.mu.Lock()
	m.data[d.Type()] = d
	m.mu.Unlock()
	return nil
}
func (m *mockRegistry) Lookup(t reflect.Type) (*descriptor.Declaration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[t]
	return d, ok
}
func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []apis.Entry
	for t, d := range m.data {
		out = append(out, apis.Entry{Type: t, Declaration: d})
	}
	return out
}
func (m *mockRegistry) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }
func (m *mockRegistry) Reset() {
	m.mu.Lock()
	m.data = make(map[reflect.Type]*descriptor.Declaration)
	m.mu.Unlock()
}

type mockResolver struct {
	id       string
	mu       sync.Mutex
	describe int
	lastCfg  apis.Config
}

func (r *mockResolver) Describe(t reflect.Type, cfg apis.Config) (*descriptor.Type, error) {
	r.mu.Lock()
	r.describe++
	r.lastCfg = cfg
	r.mu.Unlock()
	return &descriptor.Type{
		Go:      t,
		Methods: []descriptor.Method{{Name: r.id}},
	}, nil
}

type mockBuilder struct {
	mu            sync.Mutex
	lastCfg       apis.Config
	lastPrevRegID string
	lastPrevResID string
	regCounter    int
	resCounter    int
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if mr, ok := prev.(*mockRegistry); ok {
		b.lastPrevRegID = mr.id
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.Registry, prev apis.Resolver) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if mr, ok := prev.(*mockResolver); ok {
		b.lastPrevResID = mr.id
	}
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter)}
}

func (b *mockBuilder) counters() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.resCounter
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	s1Reg := Registry()
	s1Res := Resolver()

	SetConfig(config.NewConfig(config.WithMarkerTagKey("tag"), config.WithMaxUnwrap(4)))

	if Registry() == s1Reg {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if Resolver() == s1Res {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}

	b.mu.Lock()
	gotCfg, prevReg, prevRes := b.lastCfg, b.lastPrevRegID, b.lastPrevResID
	b.mu.Unlock()
	if gotCfg.MaxUnwrap != 4 || gotCfg.MarkerTagKey != "tag" {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevReg != "reg#1" || prevRes != "res#1" {
		t.Fatalf("builder did not receive previous layers: reg=%q res=%q", prevReg, prevRes)
	}
	if Config().MarkerTagKey != "tag" {
		t.Fatalf("Config() = %+v, want tag key %q", Config(), "tag")
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry did not pin the registry")
	}

	beforeRes := Resolver()
	SetConfig(config.NewConfig(config.WithExportedFieldsOnly(true)))

	if Registry() != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if Resolver() == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}
}

func TestSetRegistry_Nil_Ignored(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	resetWithBuilder(t, &mockBuilder{}, config.DefaultConfig())

	before := Registry()
	SetRegistry(nil)
	SetResolver(nil)
	SetBuilder(nil)
	if Registry() != before || IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("nil setters must leave the snapshot unchanged")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	regBefore := Registry()

	SetConfig(config.NewConfig(config.WithImplicitInitializer(false)))

	if Resolver() != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if Registry() == regBefore {
		t.Fatalf("registry was not rebuilt on SetConfig when resolver is pinned")
	}

	// The global helpers go through the installed resolver.
	if got := MethodNames(reflect.TypeOf(0)); len(got) != 1 || got[0] != "custom" {
		t.Fatalf("MethodNames did not use the pinned resolver: %v", got)
	}
	customRes.mu.Lock()
	implicit := customRes.lastCfg.ImplicitInitializer
	customRes.mu.Unlock()
	if implicit {
		t.Fatalf("resolver did not receive the current config")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	a := &mockBuilder{}
	resetWithBuilder(t, a, config.DefaultConfig())

	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	if Builder() != b {
		t.Fatalf("builder was not replaced")
	}
	if Registry() == regBefore {
		t.Fatalf("registry did not rebuild after SetBuilder (unpinned)")
	}
	if Resolver() != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder")
	}
	if reg, res := b.counters(); reg != 1 || res != 0 {
		t.Fatalf("new builder counters = (%d, %d), want (1, 0)", reg, res)
	}
}

func TestSetAll_PinsGivenLayers(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	b := &mockBuilder{}
	reg := newMockRegistry("given")
	SetAll(nil, reg, nil, b)

	if Registry() != reg || !IsRegistryPinned() {
		t.Fatalf("SetAll did not install and pin the given registry")
	}
	if IsResolverPinned() {
		t.Fatalf("SetAll pinned a resolver it built itself")
	}
	if reg, res := b.counters(); reg != 0 || res != 1 {
		t.Fatalf("builder counters = (%d, %d), want (0, 1)", reg, res)
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	PinRegistry()
	PinResolver()

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(4)))
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(6)))
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

type nilRegistryBuilder struct{ mockBuilder }

func (*nilRegistryBuilder) BuildRegistry(apis.Config, apis.Registry) apis.Registry { return nil }

func TestSetConfig_PanicsOnNilLayer(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	resetDefault(t)
	before := Registry()

	defer func() {
		if r := recover(); r != ErrNilRegistry {
			t.Fatalf("recover() = %v, want ErrNilRegistry", r)
		}
		if Registry() != before {
			t.Fatalf("a failed rebuild must not publish a snapshot")
		}
	}()
	SetBuilder(&nilRegistryBuilder{})
}

func TestMethodNames_Concurrent_With_SetConfig(t *testing.T) {
	t.Cleanup(func() { resetDefault(t) })
	resetDefault(t)

	type token struct{ ID int `mark:"id"` }
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = MarkedFields(reflect.TypeOf(token{}), "id")
				_ = MethodNames(reflect.TypeOf(&token{}))
				if _, err := CreateInstance[*token](); err != nil {
					t.Errorf("CreateInstance: %v", err)
					return
				}
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(
				config.WithExportedFieldsOnly(i%2 == 0),
				config.WithMaxUnwrap(4+(i%5)),
			))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
