package app

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/lixenwraith/termchat/dao"
	"github.com/lixenwraith/termchat/engine"
)

// ErrInvalidPort is shown when the port field is not a usable port number
var ErrInvalidPort = errors.New("port must be a number between 1 and 65535")

// CreateUser is the form storing a peer and its address
type CreateUser struct {
	*form
}

// NewCreateUser builds the user form over state
func NewCreateUser(state *State) *CreateUser {
	c := &CreateUser{}
	c.form = newForm(state, "Create",
		func() string { return fmt.Sprintf("Create New User (%d saved)", len(state.Users())) },
		c.submit,
		formField{"Username", NewTextField("", inputMaxLen)},
		formField{"Address Host", NewTextField("", inputMaxLen)},
		formField{"Address Port", NewTextField("", 5)},
	)
	return c
}

func (c *CreateUser) Mount(e *engine.Engine) {
	c.state.FetchUsers()
	c.form.Mount(e)
}

func (c *CreateUser) submit() error {
	name := strings.TrimSpace(c.value(0))
	host := strings.TrimSpace(c.value(1))
	port, err := strconv.Atoi(strings.TrimSpace(c.value(2)))
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}

	log.Printf("app: saving user %q at %s:%d", name, host, port)
	_, err = c.state.InsertUser(dao.User{Name: name}, dao.Address{Host: host, Port: port})
	return err
}

// CreateChat is the form storing a new chat
type CreateChat struct {
	*form
}

// NewCreateChat builds the chat form over state
func NewCreateChat(state *State) *CreateChat {
	c := &CreateChat{}
	c.form = newForm(state, "Create",
		func() string { return fmt.Sprintf("Create New Chat (%d saved)", len(state.Chats())) },
		c.submit,
		formField{"Name", NewTextField("", inputMaxLen)},
		formField{"Description", NewTextField("", 256)},
	)
	return c
}

func (c *CreateChat) Mount(e *engine.Engine) {
	c.state.FetchChats()
	c.form.Mount(e)
}

func (c *CreateChat) submit() error {
	chat := dao.Chat{
		Name:        strings.TrimSpace(c.value(0)),
		Description: strings.TrimSpace(c.value(1)),
	}
	log.Printf("app: saving chat %q", chat.Name)
	_, err := c.state.InsertChat(chat)
	return err
}
