package main

import (
	"fmt"

	"github.com/itsatony/go-splice"
	"github.com/itsatony/go-splice/fsstore"
	"github.com/spf13/cobra"
)

func newRecipesCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   CmdNameRecipes,
		Short: CmdShortRecipes,
	}
	cmd.PersistentFlags().StringVarP(&dir, FlagDir, FlagDirShort, FlagDefaultDir, FlagUsageDir)

	list := &cobra.Command{
		Use:   CmdNameList,
		Short: CmdShortList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecipesList(cmd, dir)
		},
	}

	var file string
	save := &cobra.Command{
		Use:   CmdUseSave,
		Short: CmdShortSave,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecipesSave(cmd, dir, args[0], file)
		},
	}
	save.Flags().StringVarP(&file, FlagFile, FlagFileShort, "", FlagUsageFile)

	del := &cobra.Command{
		Use:   CmdUseDelete,
		Short: CmdShortDelete,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecipesDelete(cmd, dir, args[0])
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

func openStore(dir string) (*fsstore.Store, error) {
	store, err := fsstore.New(dir)
	if err != nil {
		return nil, inputError(ErrMsgOpenStoreFailed, err)
	}
	return store, nil
}

func runRecipesList(cmd *cobra.Command, dir string) error {
	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.List(cmd.Context())
	if err != nil {
		return internalError(ErrMsgStoreFailed, err)
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runRecipesSave(cmd *cobra.Command, dir, name, file string) error {
	if file == "" {
		return usageError(ErrMsgMissingRecipe, nil)
	}
	data, err := readInput(file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.Save(cmd.Context(), &splice.StoredRecipe{Name: name, Source: data})
	if splice.IsErrorKind(err, splice.ErrorKindInvalidRecipe) {
		return inputError(ErrMsgLoadRecipeFailed, err)
	}
	if err != nil {
		return internalError(ErrMsgStoreFailed, err)
	}
	return nil
}

func runRecipesDelete(cmd *cobra.Command, dir, name string) error {
	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.Delete(cmd.Context(), name)
	switch {
	case splice.IsErrorKind(err, splice.ErrorKindRecipeNotFound),
		splice.IsErrorKind(err, splice.ErrorKindInvalidRecipe):
		return inputError(ErrMsgStoreFailed, err)
	case err != nil:
		return internalError(ErrMsgStoreFailed, err)
	}
	return nil
}
