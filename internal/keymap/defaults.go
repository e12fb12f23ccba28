package keymap

// defaultBindings returns a fresh copy of the built-in binding table.
// Uppercase and lowercase characters are distinct bindings, which is what
// lets `r` reload while `R` opens replication on the secret list.
func defaultBindings() map[Layer]map[Action]Binding {
	return map[Layer]map[Action]Binding{
		LayerGlobal: {
			ActionQuit:     {Char('q')},
			ActionHelp:     {Char('?')},
			ActionTheme:    {Char('t')},
			ActionBack:     {Special(CodeEsc)},
			ActionCommands: {Char('c')},
		},
		LayerNavigation: {
			ActionUp:       {Char('k'), Special(CodeUp)},
			ActionDown:     {Char('j'), Special(CodeDown)},
			ActionPageUp:   {Special(CodePageUp)},
			ActionPageDown: {Special(CodePageDown)},
			ActionHome:     {Char('g'), Special(CodeHome)},
			ActionEnd:      {Char('G'), Special(CodeEnd)},
			ActionSelect:   {Special(CodeEnter)},
		},
		LayerSearch: {
			ActionSearchToggle: {Char('/')},
			ActionSearchExit:   {Special(CodeEsc)},
		},
		LayerDialog: {
			ActionConfirm: {Char('y'), Char('Y'), Special(CodeEnter)},
			ActionCancel:  {Char('n'), Char('N'), Special(CodeEsc)},
			ActionDismiss: {Special(CodeEnter), Special(CodeEsc), Char('q')},
		},
		LayerSecrets: {
			ActionViewPayload: {Char('v')},
			ActionCopy:        {Char('y')},
			ActionNew:         {Char('n')},
			ActionDelete:      {Char('d'), Special(CodeDelete)},
			ActionLabels:      {Char('l')},
			ActionIAM:         {Char('i')},
			ActionReplication: {Char('R')},
			ActionReload:      {Char('r')},
		},
		LayerVersions: {
			ActionAdd:     {Char('a')},
			ActionDisable: {Char('d')},
			ActionEnable:  {Char('e')},
			ActionDestroy: {Char('D')},
			ActionReload:  {Char('r')},
		},
		LayerPayload: {
			ActionCopy:   {Char('y')},
			ActionReload: {Char('r')},
		},
	}
}
