package config

import (
	"fmt"

	"github.com/lixenwraith/termchat/event"
)

// Action names a rebindable command
type Action string

const (
	ActionCreateUser    Action = "create_user"
	ActionCreateChat    Action = "create_chat"
	ActionAddUser       Action = "add_user"
	ActionRemoveUser    Action = "remove_user"
	ActionCloseModal    Action = "close_modal"
	ActionToggleSidebar Action = "toggle_sidebar"
	ActionNextChat      Action = "next_chat"
	ActionPrevChat      Action = "prev_chat"
	ActionWriteMessage  Action = "write_message"
	ActionToggleMute    Action = "toggle_mute"
)

// DefaultKeys returns the stock bindings keyed by action name
func DefaultKeys() map[string]string {
	return map[string]string{
		string(ActionCreateUser):    "ctrl_u",
		string(ActionCreateChat):    "ctrl_n",
		string(ActionAddUser):       "ctrl_a",
		string(ActionRemoveUser):    "ctrl_r",
		string(ActionCloseModal):    "escape",
		string(ActionToggleSidebar): "ctrl_e",
		string(ActionNextChat):      "c",
		string(ActionPrevChat):      "C",
		string(ActionWriteMessage):  "m",
		string(ActionToggleMute):    "ctrl_t",
	}
}

// Keymap resolves actions to keys
type Keymap map[Action]event.Key

// Key returns the binding for a
func (k Keymap) Key(a Action) event.Key {
	return k[a]
}

// Keymap resolves the configured bindings; unknown names are an error
func (c *Config) Keymap() (Keymap, error) {
	km := make(Keymap, len(c.Keys))
	for action, name := range c.Keys {
		key, ok := event.KeyByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: keys.%s: unknown key %q", ErrInvalid, action, name)
		}
		km[Action(action)] = key
	}
	return km, nil
}

func (c *Config) validateKeys() error {
	km, err := c.Keymap()
	if err != nil {
		return err
	}
	seen := make(map[event.Key]Action, len(km))
	for action, key := range km {
		if key == event.Ctrl('q') {
			return fmt.Errorf("%w: keys.%s: ctrl_q is reserved for quit", ErrInvalid, action)
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: keys.%s and keys.%s share %s", ErrInvalid, prev, action, key)
		}
		seen[key] = action
	}
	return nil
}
