package main

import (
	"context"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	stu, err := cli.stuRepo.GetStudent(ctx, student.GetFilter{UsernameOrEmail: core.CleanString(uname)})
	if err != nil {
		return err
	}
	if err := stu.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.stuRepo.UpdateStudent(ctx, stu); err != nil {
		return err
	}
	return nil
}
