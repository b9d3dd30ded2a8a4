package cli

import (
	"fmt"
	"slices"
	"strings"

	"itinerary/internal/controller"
	"itinerary/internal/model"
	"itinerary/internal/render"

	"github.com/spf13/cobra"
)

// NewCheckCommand создает группу команд check для чек-листов.
func NewCheckCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Чек-листы участников",
	}
	cmd.AddCommand(newCheckListCommand(rootOpts, open))
	cmd.AddCommand(newCheckAddCommand(rootOpts, open))
	cmd.AddCommand(newCheckToggleCommand(rootOpts, open))
	cmd.AddCommand(newCheckRemoveCommand(rootOpts, open))
	return cmd
}

func newCheckListCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var person string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Показать чек-листы с прогрессом",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(open, func(s *Services) error {
				people := s.Checklist.People()
				if person != "" {
					if !s.Checklist.IsPerson(person) {
						return WrapExitError(ExitCommandError, "неизвестный участник",
							fmt.Errorf("%q, допустимы: %s", person, strings.Join(people, ", ")))
					}
					people = []string{person}
				}
				items, err := s.Checklist.List(cmd.Context())
				if err != nil {
					return failure(err)
				}
				var b strings.Builder
				for i, p := range controller.PersonProgress(items, people) {
					if i > 0 {
						b.WriteString("\n")
					}
					b.WriteString(render.Checklist(p, controller.FilterByPerson(items, p.Person)))
				}
				if person != "" {
					items = controller.FilterByPerson(items, person)
				}
				return formatter(rootOpts, cmd).Success(b.String(), items)
			})
		},
	}
	cmd.Flags().StringVarP(&person, "person", "p", "", "только чек-лист участника")
	return cmd
}

func newCheckAddCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "add <person> <title...>",
		Short: "Добавить пункт в чек-лист участника",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(open, func(s *Services) error {
				item, err := s.Checklist.Create(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return failure(err)
				}
				return formatter(rootOpts, cmd).Success(
					fmt.Sprintf("Добавлено: %s (#%d) для %s\n", item.Title, item.ID, item.Person), item)
			})
		},
	}
}

func newCheckToggleCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Переключить отметку выполнения",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withServices(open, func(s *Services) error {
				items, err := s.Checklist.List(cmd.Context())
				if err != nil {
					return failure(err)
				}
				i := slices.IndexFunc(items, func(it model.ChecklistItem) bool { return it.ID == id })
				if i < 0 {
					return WrapExitError(ExitFailure, controller.Notice(controller.ErrUnknownRecord), fmt.Errorf("#%d", id))
				}
				item, err := s.Checklist.ToggleComplete(cmd.Context(), id, items[i].IsCompleted)
				if err != nil {
					return failure(err)
				}
				state := "не выполнено"
				if item.IsCompleted {
					state = "выполнено"
				}
				return formatter(rootOpts, cmd).Success(fmt.Sprintf("%s (#%d): %s\n", item.Title, item.ID, state), item)
			})
		},
	}
}

func newCheckRemoveCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Удалить пункт чек-листа",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withServices(open, func(s *Services) error {
				return confirmRemove(cmd, rootOpts, s, controller.RemoveChecklistItem, id, yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "подтвердить удаление")
	return cmd
}
