package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

// addStudent updates or creates a student.Student
func (cli *commandLine) addStudent(uname, email, name, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname)
	email = core.CleanString(email)
	name = core.CleanString(name)
	if name == "" {
		name = uname
	}

	stu, err := cli.stuRepo.GetStudent(ctx, student.GetFilter{Username: uname})
	if err != nil {
		if errors.Cause(err) != student.ErrNotFound {
			return err
		}
		stu, err = cli.stuRepo.GetStudent(ctx, student.GetFilter{Email: email})
	}
	if err != nil {
		if errors.Cause(err) != student.ErrNotFound {
			return err
		}

		now := time.Now().UTC()
		stu = student.Student{
			Name:        name,
			Username:    uname,
			Email:       email,
			AvatarColor: student.DeriveAvatarColor(email),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err = stu.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.stuRepo.CreateStudent(ctx, stu)
		return err
	}

	stu.Name = name
	stu.Username = uname
	stu.Email = email
	if err = stu.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.stuRepo.UpdateStudent(ctx, stu)
	return err
}
