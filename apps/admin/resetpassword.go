package main

import (
	"context"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	return cli.users.ResetPassword(context.Background(), email, pwd)
}
