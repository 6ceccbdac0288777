package shell

import "strings"

// Action is one entry of the main menu.
type Action int

const (
	ActionInvalid Action = iota
	ActionAdd
	ActionList
	ActionSearch
	ActionDelete
	ActionExit
)

// menuOrder is the order actions are listed in the menu.
var menuOrder = []Action{ActionAdd, ActionList, ActionSearch, ActionDelete, ActionExit}

// ParseAction maps a menu choice ("1".."5") to its action.
func ParseAction(choice string) Action {
	switch strings.TrimSpace(choice) {
	case "1":
		return ActionAdd
	case "2":
		return ActionList
	case "3":
		return ActionSearch
	case "4":
		return ActionDelete
	case "5":
		return ActionExit
	default:
		return ActionInvalid
	}
}

func (a Action) Key() string {
	switch a {
	case ActionAdd:
		return "1"
	case ActionList:
		return "2"
	case ActionSearch:
		return "3"
	case ActionDelete:
		return "4"
	case ActionExit:
		return "5"
	default:
		return ""
	}
}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "Add note"
	case ActionList:
		return "List notes"
	case ActionSearch:
		return "Search notes"
	case ActionDelete:
		return "Delete note"
	case ActionExit:
		return "Exit"
	default:
		return "Invalid"
	}
}
