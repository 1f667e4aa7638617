package main

import (
	"context"
	"fmt"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(email, name, pwd string, role access.Role) error {
	ctx := context.Background()

	usr, err := cli.users.GetByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		nu := user.NewUser{Email: email, Name: name, Password: pwd, Role: role}
		if usr, err = cli.users.Create(ctx, cliIdentity, nu); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "created %s %s\n", usr.Role, usr.Email)
		return nil
	}

	if usr, err = cli.users.Update(ctx, cliIdentity, usr.ID, user.UpdateUser{Name: &name, Role: &role}); err != nil {
		return err
	}
	if err = cli.users.ResetPassword(ctx, usr.Email, pwd); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "updated %s %s\n", usr.Role, usr.Email)
	return nil
}
