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

package inspect_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/inspect"
	"dirpx.dev/inspect/descriptor"
)

type Greeter interface{ Greet() string }

type Villager struct {
	ID          int `mark:"id"`
	Name        string
	Description string
	secret      bool
}

func NewVillager() *Villager { return &Villager{} }

func newVillager(name, description string) *Villager {
	return &Villager{Name: name, Description: description, secret: true}
}

func (v *Villager) Greet() string { return "hi, I am " + v.Name }
func (v *Villager) whisper()      {}

var villagerDecl = descriptor.Declare[Villager]().
	Constructor(NewVillager).
	RestrictedConstructor(newVillager).
	Method("whisper").
	Implements(reflect.TypeFor[Greeter]())

// Wizard carries its own declaration.
type Wizard struct {
	Spell string `mark:"audit"`
}

var errNoSpell = errors.New("no spell")

func (Wizard) InspectDeclaration() *descriptor.Declaration {
	return descriptor.Declare[Wizard]().
		RestrictedConstructor(func(spell string) (Wizard, error) {
			if spell == "" {
				return Wizard{}, errNoSpell
			}
			return Wizard{Spell: spell}, nil
		}).
		Implements(reflect.TypeFor[fmt.Stringer]())
}

func (w Wizard) String() string { return "wizard of " + w.Spell }

func TestCreateInstance_Villager(t *testing.T) {
	require.NoError(t, inspect.Declare(villagerDecl))

	v, err := inspect.CreateInstance[*Villager]()
	require.NoError(t, err)
	assert.False(t, v.secret)

	v, err = inspect.CreateInstance[*Villager]("Bob", "farmer")
	require.NoError(t, err)
	assert.Equal(t, "Bob", v.Name)
	assert.True(t, v.secret)

	_, err = inspect.CreateInstance[Villager]("Bob")
	assert.ErrorIs(t, err, inspect.ErrNoMatchingConstructor)

	var ce *inspect.ConstructorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, reflect.TypeFor[Villager](), ce.Type)
}

func TestMethodNames_Declared(t *testing.T) {
	require.NoError(t, inspect.Declare(villagerDecl))

	assert.Equal(t, []string{"Greet", "whisper"}, inspect.MethodNames(reflect.TypeFor[Villager]()))
}

func TestMarkedFields_Global(t *testing.T) {
	assert.Equal(t, []string{"ID"}, inspect.MarkedFields(reflect.TypeFor[*Villager](), "id"))
	assert.Equal(t, []string{"Spell"}, inspect.MarkedFields(reflect.TypeFor[Wizard](), "audit"))
}

func TestDeclarer(t *testing.T) {
	w, err := inspect.CreateInstance[Wizard]("fire")
	require.NoError(t, err)
	assert.Equal(t, Wizard{Spell: "fire"}, w)

	_, err = inspect.CreateInstance[Wizard]("")
	assert.ErrorIs(t, err, inspect.ErrInvocation)
	assert.ErrorIs(t, err, errNoSpell)

	assert.Equal(t, []string{"InspectDeclaration", "String"}, inspect.MethodNames(reflect.TypeFor[Wizard]()))
}

func TestDeclare_Conflict(t *testing.T) {
	require.NoError(t, inspect.Declare(villagerDecl))
	require.NoError(t, inspect.Declare(villagerDecl))

	err := inspect.Declare(descriptor.Declare[Villager]().Constructor(NewVillager))
	assert.Error(t, err)
	assert.Panics(t, func() {
		inspect.MustDeclare(descriptor.Declare[Villager]().Mark("Nope", "id"))
	})
}

func TestDescribe(t *testing.T) {
	require.NoError(t, inspect.Declare(villagerDecl))

	desc, err := inspect.Describe(reflect.TypeFor[**Villager]())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Villager](), desc.Go)
	require.Len(t, desc.Initializers, 2)
	assert.Equal(t, "public()", desc.Initializers[0].String())
	assert.Equal(t, "restricted(string, string)", desc.Initializers[1].String())
	require.Len(t, desc.Interfaces, 1)
	assert.Equal(t, reflect.TypeFor[Greeter](), desc.Interfaces[0].Type)
}
